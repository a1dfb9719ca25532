package qclient

import (
	"container/list"
	"sync"
)

// CachedState is the state a client remembers about a server across
// connection attempts.
type CachedState struct {
	mutex            sync.Mutex
	maxDesignatedIDs int
	designatedIDs    []ConnectionID
}

// AddServerDesignatedConnectionID stores a connection ID the server asked
// the client to use for a future connection attempt.
// If the state already holds the maximum number of IDs, the oldest is dropped.
func (s *CachedState) AddServerDesignatedConnectionID(id ConnectionID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.maxDesignatedIDs > 0 && len(s.designatedIDs) >= s.maxDesignatedIDs {
		s.designatedIDs = s.designatedIDs[1:]
	}
	s.designatedIDs = append(s.designatedIDs, id)
}

// HasServerDesignatedConnectionID says if a server-designated connection ID is available.
func (s *CachedState) HasServerDesignatedConnectionID() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.designatedIDs) > 0
}

// PopServerDesignatedConnectionID returns the oldest server-designated
// connection ID, or nil if there is none. Each ID is returned once.
func (s *CachedState) PopServerDesignatedConnectionID() ConnectionID {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.designatedIDs) == 0 {
		return nil
	}
	id := s.designatedIDs[0]
	s.designatedIDs = s.designatedIDs[1:]
	return id
}

// A CachedStateStore stores CachedStates per server.
type CachedStateStore interface {
	// LookupOrCreate returns the state for the server, creating it if necessary.
	LookupOrCreate(ServerID) *CachedState
}

type lruCachedStateEntry struct {
	server ServerID
	state  *CachedState
}

type lruCachedStateStore struct {
	mutex sync.Mutex

	m                map[ServerID]*list.Element
	q                *list.List
	capacity         int
	maxDesignatedIDs int
}

var _ CachedStateStore = &lruCachedStateStore{}

// NewLRUCachedStateStore creates a new LRU cache of server states.
// maxServers is the number of servers to remember state for,
// maxDesignatedIDs the number of server-designated connection IDs kept per server.
func NewLRUCachedStateStore(maxServers, maxDesignatedIDs int) CachedStateStore {
	if maxServers == 0 {
		panic("qclient: NewLRUCachedStateStore called with maxServers = 0")
	}
	return &lruCachedStateStore{
		m:                make(map[ServerID]*list.Element),
		q:                list.New(),
		capacity:         maxServers,
		maxDesignatedIDs: maxDesignatedIDs,
	}
}

func (s *lruCachedStateStore) LookupOrCreate(server ServerID) *CachedState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if el, ok := s.m[server]; ok {
		s.q.MoveToFront(el)
		return el.Value.(*lruCachedStateEntry).state
	}
	if s.q.Len() >= s.capacity {
		// evict the least recently used server
		el := s.q.Back()
		delete(s.m, el.Value.(*lruCachedStateEntry).server)
		s.q.Remove(el)
	}
	state := &CachedState{maxDesignatedIDs: s.maxDesignatedIDs}
	s.m[server] = s.q.PushFront(&lruCachedStateEntry{server: server, state: state})
	return state
}
