package tokens

// Repo persists the token record and the cached athlete identity. Load returns
// errors.ErrNoToken when nothing has been stored; Identity returns
// errors.ErrNoIdentity likewise. Clear removes all persisted auth state,
// identity included.
type Repo interface {
	Save(record Record) error
	Load() (Record, error)
	SaveIdentity(identity Identity) error
	Identity() (Identity, error)
	LastAccountID() (string, error)
	Clear() error
}
