package mock

// savedArg is a value captured from one call to be matched against later calls.
type savedArg struct {
	id     int
	value  Value
	saved  bool
	shared []*savedArg
}

// store records value on the first call only, echoing it into every shared slot.
func (s *savedArg) store(value Value) bool {
	if s.saved {
		return false
	}

	s.value = value
	s.saved = true
	for _, link := range s.shared {
		link.value = value
		link.saved = true
	}
	return true
}

// saveStore holds the saved argument slots of one Mock, including slots shared into it.
type saveStore struct {
	args   map[int]*savedArg
	nextID int
}

func newSaveStore() *saveStore {
	return &saveStore{args: make(map[int]*savedArg)}
}

func (s *saveStore) find(id int) *savedArg {
	return s.args[id]
}

// add creates an empty slot for id.
func (s *saveStore) add(id int) (*savedArg, error) {
	if _, ok := s.args[id]; ok {
		return nil, ErrSaveArgExists
	}

	arg := &savedArg{id: id}
	s.args[id] = arg
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return arg, nil
}
