package tree

import "github.com/vladocavric/survey-js/pkg/schema"

// Find returns the first element whose identifier equals id.
func Find(elements []schema.Element, id string) (schema.Element, bool) {
	for _, el := range elements {
		switch typed := el.(type) {
		case *schema.Question:
			if typed.Name == id {
				return typed, true
			}
		case *schema.Panel:
			if typed.ID == id {
				return typed, true
			}
			if found, ok := Find(typed.Elements, id); ok {
				return found, true
			}
		case *schema.DynamicPanel:
			if typed.ID == id {
				return typed, true
			}
			if found, ok := Find(typed.TemplateElements, id); ok {
				return found, true
			}
			if len(typed.Elements) > 0 {
				if found, ok := Find(typed.Elements, id); ok {
					return found, true
				}
			}
		}
	}
	return nil, false
}

// FindQuestion returns the question named id.
func FindQuestion(elements []schema.Element, id string) (*schema.Question, bool) {
	el, ok := Find(elements, id)
	if !ok {
		return nil, false
	}
	q, ok := el.(*schema.Question)
	return q, ok
}

// IsNameUsed reports whether any question name or container id in the tree
// equals name.
func IsNameUsed(name string, elements []schema.Element) bool {
	_, ok := Find(elements, name)
	return ok
}

// Walk visits every element in lookup order. Returning false from fn skips
// the element's descendants.
func Walk(elements []schema.Element, fn func(el schema.Element, depth int) bool) {
	walk(elements, 0, fn)
}

func walk(elements []schema.Element, depth int, fn func(schema.Element, int) bool) {
	for _, el := range elements {
		if el == nil {
			continue
		}
		if !fn(el, depth) {
			continue
		}
		switch typed := el.(type) {
		case *schema.Panel:
			walk(typed.Elements, depth+1, fn)
		case *schema.DynamicPanel:
			walk(typed.TemplateElements, depth+1, fn)
			walk(typed.Elements, depth+1, fn)
		}
	}
}

// Count returns the number of elements in the tree, descendants included.
func Count(elements []schema.Element) int {
	total := 0
	Walk(elements, func(schema.Element, int) bool {
		total++
		return true
	})
	return total
}

// Identifiers lists every identifier in lookup order, duplicates included.
func Identifiers(elements []schema.Element) []string {
	var out []string
	Walk(elements, func(el schema.Element, _ int) bool {
		out = append(out, el.Identifier())
		return true
	})
	return out
}

// Duplicates returns the identifiers that occur more than once, in the order
// their second occurrence is met.
func Duplicates(elements []schema.Element) []string {
	seen := make(map[string]int)
	var out []string
	for _, id := range Identifiers(elements) {
		seen[id]++
		if seen[id] == 2 {
			out = append(out, id)
		}
	}
	return out
}

// Contains reports whether id names el or one of its descendants.
func Contains(el schema.Element, id string) bool {
	if el == nil {
		return false
	}
	_, ok := Find([]schema.Element{el}, id)
	return ok
}

// Position addresses a slot in an editable sequence. ContainerType is empty
// for the root sequence.
type Position struct {
	ContainerType schema.ElementType
	ContainerID   string
	Index         int
}

// Locate returns the editable position of the element named id. Instance
// elements of dynamic panels are not editable and are skipped.
func Locate(elements []schema.Element, id string) (Position, bool) {
	return locate(elements, "", "", id)
}

func locate(elements []schema.Element, containerType schema.ElementType, containerID, id string) (Position, bool) {
	for idx, el := range elements {
		if el != nil && el.Identifier() == id {
			return Position{ContainerType: containerType, ContainerID: containerID, Index: idx}, true
		}
		switch typed := el.(type) {
		case *schema.Panel:
			if pos, ok := locate(typed.Elements, schema.ElementPanel, typed.ID, id); ok {
				return pos, true
			}
		case *schema.DynamicPanel:
			if pos, ok := locate(typed.TemplateElements, schema.ElementDynamicPanel, typed.ID, id); ok {
				return pos, true
			}
		}
	}
	return Position{}, false
}
