package usecase

import "context"

// LikeResult is the state of a (user, product) pair after a toggle.
type LikeResult struct {
	Liked     bool
	LikeCount int
}

// LikeUsecase defines the like toggle operations.
type LikeUsecase interface {
	// ToggleLike flips the user's like on the product and adjusts the cached count.
	ToggleLike(ctx context.Context, userID, productID string) (*LikeResult, error)

	// HasLiked reports whether the like record of the pair exists.
	HasLiked(ctx context.Context, userID, productID string) (bool, error)

	// ReconcileLikeCount recounts the like records of the product and stores the result as its cached count.
	ReconcileLikeCount(ctx context.Context, productID string) (int, error)
}
