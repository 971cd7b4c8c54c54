package ecs

import "reflect"

// Store is the entity/component database for one room. All reads and
// writes happen on the room's serializer goroutine; Store itself does no
// locking.
type Store struct {
	records  []entityRecord
	freeList []EntityID
	groups   [groupCount]map[EntityID]struct{}
	pools    map[reflect.Type]pool
	pending  []EntityID // deferred deletions, flushed between systems
}

// NewStore creates an empty entity/component database.
func NewStore() *Store {
	s := &Store{pools: make(map[reflect.Type]pool)}
	for g := range s.groups {
		s.groups[g] = make(map[EntityID]struct{})
	}
	return s
}

// CreateEntity allocates a new entity id in the given group.
func (s *Store) CreateEntity(group Group) EntityID {
	var id EntityID
	if n := len(s.freeList); n > 0 {
		id = s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		s.records[id].gen++
	} else {
		id = EntityID(len(s.records))
		s.records = append(s.records, entityRecord{})
	}
	s.records[id].active = true
	s.records[id].group = group
	s.groups[group][id] = struct{}{}
	return id
}

// IsActive reports whether id currently refers to a live entity.
func (s *Store) IsActive(id EntityID) bool {
	return int(id) < len(s.records) && s.records[id].active
}

// Group returns the group an active entity belongs to.
func (s *Store) Group(id EntityID) (Group, bool) {
	if !s.IsActive(id) {
		return 0, false
	}
	return s.records[id].group, true
}

// DeleteEntity enqueues id for deferred deletion. Safe to call mid-system;
// the entity stays queryable as active until FlushDeletions runs.
func (s *Store) DeleteEntity(id EntityID) {
	if !s.IsActive(id) {
		return
	}
	s.pending = append(s.pending, id)
}

// FlushDeletions applies all pending deletions: removes every component,
// drops the entity from its group, frees its id and resets its records slot.
// Called by the scheduler between systems, and once more after the last
// system in a tick.
func (s *Store) FlushDeletions() {
	if len(s.pending) == 0 {
		return
	}
	for _, id := range s.pending {
		if !s.IsActive(id) {
			continue // already deleted earlier in this batch
		}
		for _, p := range s.pools {
			p.remove(id)
		}
		delete(s.groups[s.records[id].group], id)
		s.records[id].active = false
		s.freeList = append(s.freeList, id)
	}
	s.pending = s.pending[:0]
}

// EntitiesInGroup returns the set of active entity ids in group. The
// returned slice is a snapshot; mutating the store afterward does not
// retroactively change it.
func (s *Store) EntitiesInGroup(group Group) []EntityID {
	out := make([]EntityID, 0, len(s.groups[group]))
	for id := range s.groups[group] {
		out = append(out, id)
	}
	return out
}

func poolFor[T any](s *Store) *Pool[T] {
	t := reflect.TypeOf((*T)(nil))
	if existing, ok := s.pools[t]; ok {
		return existing.(*Pool[T])
	}
	p := NewPool[T]()
	s.pools[t] = p
	return p
}

// AddComponent attaches a component value of type T to id.
func AddComponent[T any](s *Store, id EntityID, value T) {
	poolFor[T](s).Add(id, value)
}

// HasComponent reports whether id carries a component of type T.
func HasComponent[T any](s *Store, id EntityID) bool {
	return poolFor[T](s).has(id)
}

// GetComponent returns a pointer to id's component of type T, if present.
func GetComponent[T any](s *Store, id EntityID) (*T, bool) {
	return poolFor[T](s).Get(id)
}

// RemoveComponent detaches id's component of type T, if present.
func RemoveComponent[T any](s *Store, id EntityID) {
	poolFor[T](s).remove(id)
}

// Query1 returns every entity that has a T component.
func Query1[T any](s *Store) []EntityID {
	p := poolFor[T](s)
	out := make([]EntityID, 0, p.Len())
	for id, _ := range p.All() {
		out = append(out, id)
	}
	return out
}

// Query2 returns every entity that has both T1 and T2 components. Iterates
// the T1 pool and filters on T2; iteration order is not guaranteed.
func Query2[T1, T2 any](s *Store) []EntityID {
	p1, p2 := poolFor[T1](s), poolFor[T2](s)
	out := make([]EntityID, 0)
	for id, _ := range p1.All() {
		if p2.has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Query3 returns every entity that has T1, T2 and T3 components.
func Query3[T1, T2, T3 any](s *Store) []EntityID {
	p1, p2, p3 := poolFor[T1](s), poolFor[T2](s), poolFor[T3](s)
	out := make([]EntityID, 0)
	for id, _ := range p1.All() {
		if p2.has(id) && p3.has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Query4 returns every entity that has T1, T2, T3 and T4 components.
func Query4[T1, T2, T3, T4 any](s *Store) []EntityID {
	p1, p2, p3, p4 := poolFor[T1](s), poolFor[T2](s), poolFor[T3](s), poolFor[T4](s)
	out := make([]EntityID, 0)
	for id, _ := range p1.All() {
		if p2.has(id) && p3.has(id) && p4.has(id) {
			out = append(out, id)
		}
	}
	return out
}
