package banner

type Banner struct {
	BannerName  string `db:"banner_name" json:"banner_name" example:"Banner 1"`
	BannerImage string `db:"banner_image" json:"banner_image" example:"/images/banner-1.png"`
	Description string `db:"description" json:"description" example:"Season promo"`
}
