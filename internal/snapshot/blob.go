package snapshot

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// BlobStore persists snapshots in an Azure Blob container
// (feeds/latest.json, feeds/<YYYY-MM-DD>.json).
type BlobStore struct {
	client     *azblob.Client
	container  string
	latestName string
}

// NewBlobStore connects with a storage connection string and ensures the
// container exists.
func NewBlobStore(ctx context.Context, connString, container, latestName string) (*BlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(connString, nil)
	if err != nil {
		return nil, fmt.Errorf("blob client: %w", err)
	}

	if _, err := client.CreateContainer(ctx, container, nil); err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			// Creation can also fail on restricted credentials; the
			// container usually exists already, so log and carry on.
			log.Printf("warn: create container %s: %v", container, err)
		}
	}

	return &BlobStore{client: client, container: container, latestName: latestName}, nil
}

func (b *BlobStore) Put(ctx context.Context, key string, payload []byte) error {
	if key != KeyLatest && !IsDateKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	name := objectName(key, b.latestName)
	if _, err := b.client.UploadBuffer(ctx, b.container, name, payload, nil); err != nil {
		return fmt.Errorf("upload %s/%s: %w", b.container, name, err)
	}
	return nil
}

func (b *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	// Keys come from request parameters; a non-date key must not turn
	// into an arbitrary blob name.
	if key != KeyLatest && !IsDateKey(key) {
		return nil, ErrNotFound
	}
	name := objectName(key, b.latestName)
	resp, err := b.client.DownloadStream(ctx, b.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download %s/%s: %w", b.container, name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", b.container, name, err)
	}
	return data, nil
}

func (b *BlobStore) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	pager := b.client.NewListBlobsFlatPager(b.container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", b.container, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			if key, ok := keyFromObject(*item.Name, b.latestName); ok {
				keys = append(keys, key)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}
