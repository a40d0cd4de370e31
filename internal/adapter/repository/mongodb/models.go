package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	orderdomain "github.com/Muzammil2410/fiver-sub001/internal/order/domain"
	reviewdomain "github.com/Muzammil2410/fiver-sub001/internal/review/domain"
	userdomain "github.com/Muzammil2410/fiver-sub001/internal/user/domain"
)

type packageDocument struct {
	Tier         string `bson:"tier"`
	Title        string `bson:"title"`
	Description  string `bson:"description"`
	Price        int    `bson:"price"`
	DeliveryDays int    `bson:"delivery_days"`
	Revisions    int    `bson:"revisions"`
}

type sellerSummaryDocument struct {
	ID    string `bson:"id"`
	Name  string `bson:"name"`
	Level string `bson:"level"`
}

type gigDocument struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	SellerID     string                `bson:"seller_id"`
	Title        string                `bson:"title"`
	Description  string                `bson:"description"`
	Category     string                `bson:"category"`
	Packages     []packageDocument     `bson:"packages"`
	BasePrice    int                   `bson:"base_price"`
	DeliveryTime int                   `bson:"delivery_time"`
	CoverURL     string                `bson:"cover_url,omitempty"`
	Active       bool                  `bson:"active"`
	Rating       float64               `bson:"rating"`
	ReviewCount  int                   `bson:"review_count"`
	Seller       sellerSummaryDocument `bson:"seller"`
	CreatedAt    time.Time             `bson:"created_at"`
	UpdatedAt    time.Time             `bson:"updated_at"`
}

type orderDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	GigID       string             `bson:"gig_id"`
	GigTitle    string             `bson:"gig_title"`
	BuyerID     string             `bson:"buyer_id"`
	SellerID    string             `bson:"seller_id"`
	PackageTier string             `bson:"package_tier"`
	Price       int                `bson:"price"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	GigID      string             `bson:"gig_id"`
	ReviewerID string             `bson:"reviewer_id"`
	Rating     int                `bson:"rating"`
	Comment    string             `bson:"comment"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	IsSeller     bool               `bson:"is_seller"`
	Level        string             `bson:"level,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toGigDocument(g *gigdomain.Gig) (*gigDocument, error) {
	if g == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	var err error
	if g.ID != "" {
		docID, err = primitive.ObjectIDFromHex(g.ID)
		if err != nil {
			return nil, fmt.Errorf("toGigDocument: invalid ID %q: %w", g.ID, err)
		}
	}

	packages := make([]packageDocument, 0, len(g.Packages))
	for _, p := range g.Packages {
		packages = append(packages, packageDocument{
			Tier:         string(p.Tier),
			Title:        p.Title,
			Description:  p.Description,
			Price:        p.Price,
			DeliveryDays: p.DeliveryDays,
			Revisions:    p.Revisions,
		})
	}

	return &gigDocument{
		ID:           docID,
		SellerID:     g.SellerID,
		Title:        g.Title,
		Description:  g.Description,
		Category:     string(g.Category),
		Packages:     packages,
		BasePrice:    g.BasePrice,
		DeliveryTime: g.DeliveryTime,
		CoverURL:     g.CoverURL,
		Active:       g.Active,
		Rating:       g.Rating,
		ReviewCount:  g.ReviewCount,
		Seller: sellerSummaryDocument{
			ID:    g.Seller.ID,
			Name:  g.Seller.Name,
			Level: g.Seller.Level,
		},
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}, nil
}

func toDomainGig(d *gigDocument) *gigdomain.Gig {
	if d == nil {
		return nil
	}
	packages := make([]gigdomain.Package, 0, len(d.Packages))
	for _, p := range d.Packages {
		packages = append(packages, gigdomain.Package{
			Tier:         gigdomain.PackageTier(p.Tier),
			Title:        p.Title,
			Description:  p.Description,
			Price:        p.Price,
			DeliveryDays: p.DeliveryDays,
			Revisions:    p.Revisions,
		})
	}
	return &gigdomain.Gig{
		ID:           d.ID.Hex(),
		SellerID:     d.SellerID,
		Title:        d.Title,
		Description:  d.Description,
		Category:     gigdomain.Category(d.Category),
		Packages:     packages,
		BasePrice:    d.BasePrice,
		DeliveryTime: d.DeliveryTime,
		CoverURL:     d.CoverURL,
		Active:       d.Active,
		Rating:       d.Rating,
		ReviewCount:  d.ReviewCount,
		Seller: gigdomain.SellerSummary{
			ID:    d.Seller.ID,
			Name:  d.Seller.Name,
			Level: d.Seller.Level,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDomainGigs(docs []*gigDocument) []*gigdomain.Gig {
	gigs := make([]*gigdomain.Gig, 0, len(docs))
	for _, doc := range docs {
		gigs = append(gigs, toDomainGig(doc))
	}
	return gigs
}

func toDomainOrder(d *orderDocument) *orderdomain.Order {
	if d == nil {
		return nil
	}
	return &orderdomain.Order{
		ID:          d.ID.Hex(),
		GigID:       d.GigID,
		GigTitle:    d.GigTitle,
		BuyerID:     d.BuyerID,
		SellerID:    d.SellerID,
		PackageTier: d.PackageTier,
		Price:       d.Price,
		Status:      orderdomain.Status(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainReview(d *reviewDocument) *reviewdomain.Review {
	if d == nil {
		return nil
	}
	return &reviewdomain.Review{
		ID:         d.ID.Hex(),
		GigID:      d.GigID,
		ReviewerID: d.ReviewerID,
		Rating:     d.Rating,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func toDomainUser(d *userDocument) *userdomain.User {
	if d == nil {
		return nil
	}
	return &userdomain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsSeller:     d.IsSeller,
		Level:        d.Level,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
