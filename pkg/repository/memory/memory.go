package memory

import (
	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
)

// Memory is a process-local Repository for development and tests
type Memory struct {
	entry *entryRepository
	user  *userRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		entry: newEntryRepository(),
		user:  newUserRepository(),
	}
}

func (m *Memory) Entry() interfaces.EntryRepository {
	return m.entry
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Close() error {
	return nil
}
