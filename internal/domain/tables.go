package domain

var Tables = []interface{}{
	// Accounts
	&User{},
	// Catalog
	&Category{},
	&Business{},
	&Product{},
	&ProductImage{},
	&ProductComment{},
	// Shopping
	&Wish{},
	&WishItem{},
	&Cart{},
	&RequestCart{},
}
