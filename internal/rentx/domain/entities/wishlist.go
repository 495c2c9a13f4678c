package entities

// WishlistAction distinguishes the two wishlist mutations.
type WishlistAction string

// Wishlist actions.
const (
	WishlistAdded   WishlistAction = "added"
	WishlistRemoved WishlistAction = "removed"
)

// WishlistEvent describes a successful wishlist mutation. Origin identifies
// the service instance that performed it, so instances can tell their own
// events apart from external ones arriving over the event bus.
type WishlistEvent struct {
	Origin    string         `json:"origin"`
	UserID    string         `json:"user_id"`
	ProductID int64          `json:"product_id"`
	Action    WishlistAction `json:"action"`
	Count     int            `json:"count"`
}
