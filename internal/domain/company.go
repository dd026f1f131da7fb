package domain

// Company is a customer organization tickets are filed against.
type Company struct {
	ID          string
	Name        string
	Address     string
	Phone       string
	Email       string
	ContactName string
}
