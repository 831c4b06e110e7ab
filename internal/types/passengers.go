// README: Passenger headcount value object shared by dialogue and search.
package types

type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}
