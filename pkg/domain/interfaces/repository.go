package interfaces

// Repository groups the record stores behind one backend
type Repository interface {
	Entry() EntryRepository
	User() UserRepository
	Close() error
}
