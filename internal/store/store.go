// Package store defines the capability surface of the remote bill store.
// Backends live in sub-packages and in pkg/billedapi.
package store

import (
	"context"
	"io"

	"github.com/angelofallars/billed/internal/bill"
)

//go:generate mockery --name Store --output ./mocks
type Store interface {
	Bills() Bills
}

//go:generate mockery --name Bills --output ./mocks
type Bills interface {
	// List returns every bill visible to the caller.
	List(ctx context.Context) ([]bill.Bill, error)

	// Create stores a file for a new bill resource and returns where the
	// file lives and the key of the created resource.
	Create(ctx context.Context, req CreateRequest) (*Created, error)

	// Update writes b under key. An empty key creates a new resource.
	Update(ctx context.Context, key string, b bill.Bill) (*bill.Bill, error)
}

// Authenticator is implemented by stores that sign users in themselves.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}

// File is an uploaded file as received from the browser.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type CreateRequest struct {
	File    File
	Email   string
	Headers map[string]string
}

type Created struct {
	FileURL string
	Key     string
}
