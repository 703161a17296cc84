// Package navigation define el árbol de navegación de la aplicación y su filtrado
// según la autorización del usuario.
package navigation

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/core-stock/internal/domain/authz"
)

//go:embed navigation.yaml
var defaultSchema []byte

var defaultTree = mustParse(defaultSchema)

// Item nodo del árbol de navegación.
type Item struct {
	Label    string
	Path     string
	Icon     string
	Required authz.Requirement
	Children []Item
}

// IsVisible un nodo sin requisito siempre es visible; admin ve todo;
// en otro caso se evalúa el requisito con alias (OR para listas).
func IsVisible(node Item, a authz.Authorization) bool {
	return node.Required.SatisfiedBy(a)
}

// FilterTree devuelve un árbol nuevo con los nodos visibles para a.
// Un padre visible se conserva aunque ninguno de sus hijos lo sea; solo se podan los hijos.
// El árbol de entrada no se modifica.
func FilterTree(tree []Item, a authz.Authorization) []Item {
	out := make([]Item, 0, len(tree))
	for _, node := range tree {
		if !IsVisible(node, a) {
			continue
		}
		cp := node
		cp.Children = nil
		if len(node.Children) > 0 {
			if kids := FilterTree(node.Children, a); len(kids) > 0 {
				cp.Children = kids
			}
		}
		out = append(out, cp)
	}
	return out
}

// Default copia del árbol embebido en el binario.
func Default() []Item {
	return clone(defaultTree)
}

type itemYAML struct {
	Label       string     `yaml:"label"`
	Path        string     `yaml:"path"`
	Icon        string     `yaml:"icon"`
	Requires    string     `yaml:"requires"`
	RequiresAny []string   `yaml:"requires_any"`
	Children    []itemYAML `yaml:"children"`
}

// Parse lee un esquema de navegación en YAML.
func Parse(data []byte) ([]Item, error) {
	var raw []itemYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("navigation: yaml: %w", err)
	}
	return convert(raw, "")
}

func convert(raw []itemYAML, parent string) ([]Item, error) {
	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		where := fmt.Sprintf("%s[%d]", parent, i)
		if r.Label == "" || r.Path == "" {
			return nil, fmt.Errorf("navigation: %s: label y path son obligatorios", where)
		}
		if r.Requires != "" && len(r.RequiresAny) > 0 {
			return nil, fmt.Errorf("navigation: %s (%s): requires y requires_any son excluyentes", where, r.Path)
		}
		// requires_any presente exige al menos un permiso
		if r.RequiresAny != nil && len(r.RequiresAny) == 0 {
			return nil, fmt.Errorf("navigation: %s (%s): requires_any vacío", where, r.Path)
		}
		item := Item{Label: r.Label, Path: r.Path, Icon: r.Icon}
		switch {
		case r.Requires != "":
			item.Required = authz.Single(authz.Permission(r.Requires))
		case len(r.RequiresAny) > 0:
			perms := make([]authz.Permission, len(r.RequiresAny))
			for j, p := range r.RequiresAny {
				if p == "" {
					return nil, fmt.Errorf("navigation: %s (%s): permiso vacío en requires_any", where, r.Path)
				}
				perms[j] = authz.Permission(p)
			}
			item.Required = authz.AnyOf(perms...)
		}
		if len(r.Children) > 0 {
			kids, err := convert(r.Children, where+".children")
			if err != nil {
				return nil, err
			}
			item.Children = kids
		}
		items = append(items, item)
	}
	return items, nil
}

func mustParse(data []byte) []Item {
	tree, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return tree
}

func clone(tree []Item) []Item {
	if tree == nil {
		return nil
	}
	out := make([]Item, len(tree))
	for i, n := range tree {
		out[i] = n
		out[i].Children = clone(n.Children)
	}
	return out
}
