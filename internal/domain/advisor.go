package domain

// Advisor is a desk operator tickets are assigned to.
type Advisor struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	WorkerNumber string
}
