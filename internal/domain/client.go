package domain

// Client is a person at a company who reports tickets.
type Client struct {
	ID        string
	Name      string
	Email     string
	CompanyID string
}
