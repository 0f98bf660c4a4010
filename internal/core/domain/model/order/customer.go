package order

// Customer is the read model of the person the order belongs to, carried on
// the aggregate for display on delivery screens. The store owns customer
// records; the delivery workflow never mutates them.
type Customer struct {
	ID    string
	Name  string
	Phone string
	Email string
}

// LineItem is one entry of the ordered sequence of items on an order.
type LineItem struct {
	ID       string
	Name     string
	Quantity int
	// UnitPrice is in centavos to avoid float money arithmetic.
	UnitPrice int64
}
