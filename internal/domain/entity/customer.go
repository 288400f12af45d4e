package entity

import "time"

// Customer representa un cliente del negocio (criador, finca o veterinario).
// Las órdenes lo referencian por ID y guardan una copia de Name.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	Pincode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
