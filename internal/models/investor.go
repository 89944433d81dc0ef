package models

import "time"

type Investor struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	TaxID     string    `json:"taxId"`
	CreatedAt time.Time `json:"createdAt"`
}
