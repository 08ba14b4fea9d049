package dto

import "encoding/json"

// ServiceSelection normalizes the two shapes booking clients send for a
// service line: a bare catalog id, or {"id": n, "quantity": m}. It is
// decoded once at the boundary; everything past the handlers sees only
// this struct.
type ServiceSelection struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

func (s *ServiceSelection) UnmarshalJSON(b []byte) error {
	var id uint
	if err := json.Unmarshal(b, &id); err == nil {
		s.ID = id
		s.Quantity = 1
		return nil
	}

	type alias ServiceSelection
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Quantity <= 0 {
		a.Quantity = 1
	}
	*s = ServiceSelection(a)
	return nil
}
