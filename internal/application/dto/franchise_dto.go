package dto

// FranchiseAdminRef references an admin by email on franchise creation.
type FranchiseAdminRef struct {
	Email string `json:"email"`
}

// CreateFranchiseRequest input for franchise creation.
type CreateFranchiseRequest struct {
	Name   string              `json:"name"`
	Admins []FranchiseAdminRef `json:"admins"`
}

// FranchiseAdminResponse resolved admin identity in franchise output.
type FranchiseAdminResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FranchiseResponse franchise output with nested stores.
type FranchiseResponse struct {
	ID     int64                    `json:"id"`
	Name   string                   `json:"name"`
	Admins []FranchiseAdminResponse `json:"admins"`
	Stores []StoreResponse          `json:"stores"`
}

// CreateStoreRequest input for store creation; the franchise id comes from
// the path.
type CreateStoreRequest struct {
	Name string `json:"name"`
}

// StoreResponse store output.
type StoreResponse struct {
	ID          int64  `json:"id"`
	FranchiseID int64  `json:"franchiseId,omitempty"`
	Name        string `json:"name"`
}
