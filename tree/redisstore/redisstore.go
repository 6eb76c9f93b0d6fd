/*
Package redisstore provides persistence of whole trees on a redis DB.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pbanos/sprout/tree"
	"github.com/pbanos/sprout/tree/json"
	"gopkg.in/redis.v5"
)

// StoreError represents an error related with the store
type StoreError string

// ErrTreeNotFound is returned when no tree is stored under the requested ID
const ErrTreeNotFound = StoreError("tree not found")

func (se StoreError) Error() string {
	return string(se)
}

/*
Store keeps trees encoded as JSON under keys with the form prefix:id.
*/
type Store struct {
	rc     *redis.Client
	prefix string
}

// New builds a Store backed by the given redis client
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc, prefix}
}

// Create takes a tree, stores it under a new random ID and returns the ID
func (rs *Store) Create(ctx context.Context, t *tree.Tree) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("creating tree: encoding tree: %w", err)
	}
	var ok bool
	var id string
	for !ok {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id = uuid.NewString()
		ok, err = rs.rc.SetNX(rs.keyFor(id), data, 0).Result()
		if err != nil {
			return "", fmt.Errorf("creating tree in redis: %w", err)
		}
	}
	return id, nil
}

// Store takes an ID and a tree and stores the tree under the ID, replacing
// any tree previously stored there
func (rs *Store) Store(ctx context.Context, id string, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %w", id, err)
	}
	err = rs.rc.Set(rs.keyFor(id), data, 0).Err()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %w", id, err)
	}
	return nil
}

// Get takes an ID and returns the tree stored under it, or ErrTreeNotFound
func (rs *Store) Get(ctx context.Context, id string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(id)).Result()
	if err == redis.Nil {
		return nil, ErrTreeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %w", id, err)
	}
	t, err := json.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: decoding: %w", id, err)
	}
	return t, nil
}

// Delete takes an ID and removes the tree stored under it, if any
func (rs *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := rs.rc.Del(rs.keyFor(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %w", id, err)
	}
	return nil
}

func (rs *Store) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
