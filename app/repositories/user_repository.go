package repositories

import (
	"encoding/binary"

	"griddle/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB.
// Usernames are kept unique by a uname: index key written in the same
// transaction as the user record; Badger's conflict detection turns a
// duplicate-insert race into ErrDuplicateUsername.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user, failing with ErrDuplicateUsername if the
// username is already taken.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return updateWithRetry(r.db, func(txn *badger.Txn) error {
		nameKey := usernameKey(user.Username)
		_, err := txn.Get(nameKey)
		if err == nil {
			return ErrDuplicateUsername
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id
		user.BeforeCreate()

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}

		idBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(idBytes, uint32(user.ID))
		return txn.Set(nameKey, idBytes)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		return getUser(txn, id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by exact username match
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id int
		err = item.Value(func(val []byte) error {
			id = int(binary.BigEndian.Uint32(val))
			return nil
		})
		if err != nil {
			return err
		}
		return getUser(txn, id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users ordered by ID
func (r *BadgerUserRepository) List() ([]*models.User, error) {
	var users []*models.User
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(UserKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var user models.User
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &user)
			})
			if err != nil {
				return err
			}
			users = append(users, &user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetRole updates a user's role. Administrative use only; not exposed
// through the API.
func (r *BadgerUserRepository) SetRole(id int, role models.Role) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var user models.User
		if err := getUser(txn, id, &user); err != nil {
			return err
		}
		user.Role = role

		data, err := marshalEntity(&user)
		if err != nil {
			return err
		}
		return txn.Set(userKey(id), data)
	})
}

func getUser(txn *badger.Txn, id int, user *models.User) error {
	item, err := txn.Get(userKey(id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, user)
	})
}
