package entity

// FranchiseAdmin is the resolved identity of a franchise administrator.
type FranchiseAdmin struct {
	UserID int64
	Name   string
	Email  string
}

// Franchise groups stores under a brand. Admins are users holding a
// franchisee grant scoped to this franchise.
type Franchise struct {
	ID     int64
	Name   string
	Admins []FranchiseAdmin
	Stores []Store
}

// Store is a single location owned by a franchise.
type Store struct {
	ID          int64
	FranchiseID int64
	Name        string
}
