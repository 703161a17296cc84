package dto

// Límites de paginación de los listados.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest paginación por query (?limit=&offset=).
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize deja Limit en [1, MaxPageLimit] (0 o negativo toma el valor por defecto) y
// Offset en >= 0.
func (p PageRequest) Normalize() PageRequest {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResponse eco de la página aplicada. Returned indica cuántos ítems trae la respuesta.
type PageResponse struct {
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
	Returned int `json:"returned"`
}

// ErrorResponse cuerpo de error de la API: Code estable para clientes, Message legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
