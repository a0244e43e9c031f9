package catalog

// Service is one purchasable catalog entry. ServiceTarif is the price in whole
// currency units; the catalog is read-only from the transaction engine's side.
type Service struct {
	ServiceCode  string `db:"service_code" json:"service_code" example:"PLN"`
	ServiceName  string `db:"service_name" json:"service_name" example:"Electricity"`
	ServiceIcon  string `db:"service_icon" json:"service_icon" example:"/images/pln.png"`
	ServiceTarif int64  `db:"service_tarif" json:"service_tarif" example:"40000"`
}
