package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username          string    `gorm:"not null;uniqueIndex"`
	Email             string    `gorm:"not null"` // уникальность обеспечим функциональным индексом lower(email)
	Password          string    `gorm:"not null"` // bcrypt hash
	IsAdmin           bool      `gorm:"not null;default:false"`
	IsVerified        bool      `gorm:"not null;default:false;index"`
	VerificationToken *string   `gorm:"type:text"`
	ResetToken        *string   `gorm:"type:text"`
	ResetExpires      *time.Time
	ProfilePic        *string   `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"not null;default:now()"`
	UpdatedAt         time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }

type GameType string

const (
	GameTypeGame       GameType = "game"
	GameTypeDLC        GameType = "dlc"
	GameTypePreorder   GameType = "preorder"
	GameTypeGiftCard   GameType = "gift_card"
	GameTypeGameDLC    GameType = "game_dlc"
	GameTypeDemo       GameType = "demo"
	GameTypeFreeToPlay GameType = "free_to_play"
)

type Game struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string          `gorm:"not null"`
	Genre        string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Discount     float64         `gorm:"not null;default:0"` // percent, 0..100
	Stock        *int32          `gorm:"type:int"`           // NULL = unavailable sentinel
	Platform     string          `gorm:"type:text;index"`
	System       string          `gorm:"type:text;index"`
	Type         GameType        `gorm:"type:text;not null;default:'game';index"`
	Preorder     bool            `gorm:"not null;default:false;index"`
	Upcoming     bool            `gorm:"not null;default:false;index"`
	Description  string          `gorm:"type:text"`
	TrailerURL   string          `gorm:"type:text"`
	DLCLink      string          `gorm:"type:text"`
	BaseGameLink string          `gorm:"type:text"`
	ImageURL     string          `gorm:"type:text"`
	ReviewsAvg   float64         `gorm:"not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null;default:now();index"`
	UpdatedAt    time.Time       `gorm:"not null;default:now()"`
}

func (Game) TableName() string { return "games" }

// Available: stock is numeric and positive.
func (g *Game) Available() bool { return g.Stock != nil && *g.Stock > 0 }

// StockValue treats the NULL sentinel as zero.
func (g *Game) StockValue() int32 {
	if g.Stock == nil {
		return 0
	}
	return *g.Stock
}

// NormalizeGame enforces the catalog invariants before persistence:
// preorder items that are not free-to-play are classified as demo,
// upcoming items carry no stock. Callers invoke it explicitly before
// every Create/Update.
func NormalizeGame(g *Game) {
	if g.Preorder && g.Type != GameTypeFreeToPlay {
		g.Type = GameTypeDemo
	}
	if g.Upcoming {
		zero := int32(0)
		g.Stock = &zero
	}
}

type OrderStatus string

const (
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusFailed   OrderStatus = "failed"
	OrderStatusAwaiting OrderStatus = "awaiting_verification"
)

// Order.ID is the externally supplied identifier generated at
// checkout-session creation; it doubles as the webhook idempotency key.
type Order struct {
	ID         string          `gorm:"type:text;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Status     OrderStatus     `gorm:"type:text;not null;default:'awaiting_verification';index"`
	GameTitles pq.StringArray  `gorm:"type:text[]"` // denormalized for display
	CreatedAt  time.Time       `gorm:"not null;default:now();index"`
	UpdatedAt  time.Time       `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   string    `gorm:"type:text;not null;index"`
	GameID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int32     `gorm:"type:int;not null"` // CHECK (quantity >= 1) в миграции
	Preorder  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_reviews_game_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_reviews_game_user"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Review) TableName() string { return "reviews" }
