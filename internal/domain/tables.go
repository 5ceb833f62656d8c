package domain

var Tables = []interface{}{
	&Plant{},
}
