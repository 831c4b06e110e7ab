// README: Common money value object used across modules.
package types

import "fmt"

type Money struct {
    Amount   int64  `json:"amount"`
    Currency string `json:"currency"`
}

// String renders the amount in major units, e.g. "12999 INR" -> "129.99 INR".
func (m Money) String() string {
    return fmt.Sprintf("%d.%02d %s", m.Amount/100, m.Amount%100, m.Currency)
}
