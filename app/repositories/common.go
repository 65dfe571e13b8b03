package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

const (
	// Key prefixes for different entity types. Entity keys embed a
	// zero-padded ID so lexicographic key order matches numeric ID
	// order, which keeps iteration order stable.
	UserKeyPrefix    = "user:"
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Username index keys map a username to its user ID. The prefix
	// must not collide with UserKeyPrefix.
	UsernameKeyPrefix = "uname:"

	// Sequence keys for auto-incrementing IDs
	UserSeqKey    = "seq:user"
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
)

func userKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", UserKeyPrefix, id))
}

func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", PostKeyPrefix, id))
}

func commentKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", CommentKeyPrefix, id))
}

func usernameKey(username string) []byte {
	return []byte(UsernameKeyPrefix + username)
}

// updateWithRetry runs fn in a read-write transaction, re-running it
// when Badger's conflict detection aborts the commit. On the re-run
// the transaction observes the competing write, so races resolve to
// their domain error (ErrDuplicateUsername, ErrNotFound) instead of
// surfacing a conflict.
func updateWithRetry(db *badger.DB, fn func(txn *badger.Txn) error) error {
	for {
		err := db.Update(fn)
		if err != badger.ErrConflict {
			return err
		}
	}
}

// getNextID claims the next ID for a given sequence key within txn.
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	switch {
	case err == badger.ErrKeyNotFound:
		id = 1
	case err != nil:
		return 0, err
	default:
		err = item.Value(func(val []byte) error {
			id = int(binary.BigEndian.Uint32(val)) + 1
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	idBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(idBytes, uint32(id))
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}
	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
