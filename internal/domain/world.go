package domain

// Snapshot - неизменяемый снимок состояния карты, который коллаборатор
// передает движку при каждом взаимодействии.
type Snapshot struct {
	Grid      GridSpec         `json:"grid"`
	Elements  []Element        `json:"elements"`
	Modifiers []GlobalModifier `json:"modifiers,omitempty"`
}

// Find ищет элемент по ID. Возвращает указатель внутрь снимка - только для чтения.
func (s *Snapshot) Find(id ElementID) *Element {
	return FindElement(s.Elements, id)
}

// Group возвращает элементы местности с данным groupId в порядке списка.
func (s *Snapshot) Group(groupID string) []*Element {
	return GroupMembers(s.Elements, groupID)
}

// Enemies возвращает врагов в порядке списка.
func (s *Snapshot) Enemies() []*Element {
	var out []*Element
	for i := range s.Elements {
		if s.Elements[i].Kind == ElementEnemy {
			out = append(out, &s.Elements[i])
		}
	}
	return out
}

func FindElement(elements []Element, id ElementID) *Element {
	if id == "" {
		return nil
	}
	for i := range elements {
		if elements[i].ID == id {
			return &elements[i]
		}
	}
	return nil
}

func GroupMembers(elements []Element, groupID string) []*Element {
	if groupID == "" {
		return nil
	}
	var out []*Element
	for i := range elements {
		e := &elements[i]
		if e.IsTerrain() && e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out
}
