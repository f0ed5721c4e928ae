package user

type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Username      string `gorm:"uniqueIndex;not null" json:"username"`
	Password      string `json:"password,omitempty"`
	OverallRating int    `gorm:"not null;default:0;index" json:"overall_rating"`
	HighestRating int    `gorm:"not null;default:0" json:"highest_rating"`
}

func (User) TableName() string {
	return "user"
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
