package domain

type Customer struct {
	ID    int
	Name  string
	Email string
	Phone string
}
