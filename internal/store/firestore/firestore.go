// Package firestore keeps bills in a Firestore collection and their files in
// a Cloud Storage bucket.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/store"
)

const billsCollection = "bills"

var (
	_ store.Store = (*Store)(nil)
	_ store.Bills = (*billsResource)(nil)
)

// Store is used to interact with bills stored on Firestore.
type Store struct {
	fs     *firestore.Client
	gcs    *storage.Client
	bucket string
}

// New returns a Store for the given project, with files in bucket. opts
// apply to both clients.
func New(ctx context.Context, projectID, bucket string, opts ...option.ClientOption) (*Store, error) {
	fs, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	gcs, err := storage.NewClient(ctx, opts...)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return NewWithClients(fs, gcs, bucket), nil
}

// NewWithClients returns a Store using the given clients.
func NewWithClients(fs *firestore.Client, gcs *storage.Client, bucket string) *Store {
	return &Store{fs: fs, gcs: gcs, bucket: bucket}
}

func (s *Store) Close() error {
	return errors.Join(s.fs.Close(), s.gcs.Close())
}

func (s *Store) Bills() store.Bills {
	return &billsResource{s: s}
}

type billsResource struct {
	s *Store
}

func (b *billsResource) List(ctx context.Context) ([]bill.Bill, error) {
	docs, err := b.s.fs.Collection(billsCollection).
		OrderBy("date", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, classify(err)
	}

	bills := make([]bill.Bill, 0, len(docs))
	for _, doc := range docs {
		var bl bill.Bill
		if err := doc.DataTo(&bl); err != nil {
			return nil, classify(fmt.Errorf("decoding bill %s: %w", doc.Ref.ID, err))
		}
		bl.ID = doc.Ref.ID
		bills = append(bills, bl)
	}

	return bills, nil
}

func (b *billsResource) Create(ctx context.Context, req store.CreateRequest) (*store.Created, error) {
	if req.File.Content == nil {
		return nil, store.NewError(http.StatusBadRequest, store.ErrNoFile)
	}

	ref := b.s.fs.Collection(billsCollection).NewDoc()
	name := path.Base(req.File.Name)
	objectName := path.Join(billsCollection, ref.ID, name)

	w := b.s.gcs.Bucket(b.s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = req.File.ContentType
	if _, err := io.Copy(w, req.File.Content); err != nil {
		w.Close()
		return nil, classify(fmt.Errorf("uploading %s: %w", objectName, err))
	}
	if err := w.Close(); err != nil {
		return nil, classify(fmt.Errorf("uploading %s: %w", objectName, err))
	}

	fileURL := (&url.URL{
		Scheme: "https",
		Host:   "storage.googleapis.com",
		Path:   path.Join("/", b.s.bucket, objectName),
	}).String()

	if _, err := ref.Create(ctx, bill.Bill{
		Email:    req.Email,
		FileURL:  &fileURL,
		FileName: &name,
		Status:   bill.StatusPending,
	}); err != nil {
		return nil, classify(err)
	}

	return &store.Created{FileURL: fileURL, Key: ref.ID}, nil
}

func (b *billsResource) Update(ctx context.Context, key string, bl bill.Bill) (*bill.Bill, error) {
	col := b.s.fs.Collection(billsCollection)

	if key == "" {
		ref, _, err := col.Add(ctx, bl)
		if err != nil {
			return nil, classify(err)
		}
		bl.ID = ref.ID
		return &bl, nil
	}

	ref := col.Doc(key)
	err := b.s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, bl)
	})
	if err != nil {
		return nil, classify(err)
	}

	bl.ID = key
	return &bl, nil
}

// classify attaches the HTTP status matching the gRPC code of err.
func classify(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return store.NewError(http.StatusNotFound, fmt.Errorf("%w: %v", store.ErrNotFound, err))
	case codes.PermissionDenied:
		return store.NewError(http.StatusForbidden, err)
	case codes.Unauthenticated:
		return store.NewError(http.StatusUnauthorized, err)
	case codes.InvalidArgument:
		return store.NewError(http.StatusBadRequest, err)
	default:
		return store.NewError(http.StatusInternalServerError, err)
	}
}
