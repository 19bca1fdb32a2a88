package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Cart operation codes accepted by Apply.
const (
	CartAdd    = "add"
	CartRemove = "remove"
	CartDelete = "delete"
)

// Apply mutates the cart in memory for a single operation on one
// product. offerPrice is the product's current offer price and seller
// the owning seller's display name, snapshotted into new lines.
//
// "remove" never drops a line: a quantity of one stays at one, and the
// total is untouched. Only "delete" removes lines, subtracting
// quantity times the current offer price. Unknown codes are rejected
// by the handler before Apply is called; Apply ignores them.
func (c *Cart) Apply(code string, productID primitive.ObjectID, offerPrice float64, seller string) {
	index := c.itemIndex(productID)
	switch code {
	case CartAdd:
		if index != -1 {
			c.Items[index].Quantity++
		} else {
			c.Items = append(c.Items, CartItem{
				ProductID: productID,
				Seller:    seller,
				Quantity:  1,
			})
		}
		c.TotalPrice += offerPrice
	case CartRemove:
		if index != -1 && c.Items[index].Quantity > 1 {
			c.Items[index].Quantity--
			c.TotalPrice -= offerPrice
		}
	case CartDelete:
		if index != -1 {
			c.TotalPrice -= offerPrice * float64(c.Items[index].Quantity)
			c.Items = append(c.Items[:index], c.Items[index+1:]...)
		}
	}
}

// Clear empties the cart after a successful checkout.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalPrice = 0
}

func (c *Cart) itemIndex(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// AddToWishList appends a product reference unless it is already
// present, in which case it reports ErrAlreadyWishlisted.
func (u *User) AddToWishList(productID primitive.ObjectID) error {
	for _, item := range u.WishList {
		if item.ProductID == productID {
			return ErrAlreadyWishlisted
		}
	}
	u.WishList = append(u.WishList, WishItem{
		ID:        primitive.NewObjectID(),
		ProductID: productID,
	})
	return nil
}

// RemoveFromWishList filters the reference out. Removing a product
// that is not wishlisted is a no-op.
func (u *User) RemoveFromWishList(productID primitive.ObjectID) {
	kept := u.WishList[:0]
	for _, item := range u.WishList {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	u.WishList = kept
}
