// Package stats groups traffic records by domain and user for a single day.
package stats

import "github.com/courier-tools/courier-traffic/pkg/parser"

// Counters holds bytes per protocol.
type Counters struct {
	POP3 uint64
	IMAP uint64
}

func (c *Counters) Add(p parser.Protocol, n uint64) {
	if p == parser.POP3 {
		c.POP3 += n
	} else {
		c.IMAP += n
	}
}

func (c Counters) Total() uint64 {
	return c.POP3 + c.IMAP
}

type User struct {
	Name     string
	Received Counters
	Sent     Counters
}

func (u *User) Total() uint64 {
	return u.Received.Total() + u.Sent.Total()
}

type Domain struct {
	Name string
	// first-seen order
	Users []*User

	index map[string]*User
}

// User returns the user called name, creating it if needed.
func (d *Domain) User(name string) *User {
	if u, ok := d.index[name]; ok {
		return u
	}
	u := &User{Name: name}
	if d.index == nil {
		d.index = make(map[string]*User)
	}
	d.index[name] = u
	d.Users = append(d.Users, u)
	return u
}

func (d *Domain) Total() uint64 {
	var total uint64
	for _, u := range d.Users {
		total += u.Total()
	}
	return total
}

// Store is the aggregation for one day. Domains and users keep the order in
// which they were first seen.
type Store struct {
	Domains []*Domain

	index map[string]*Domain
}

func NewStore() *Store {
	return &Store{index: make(map[string]*Domain)}
}

// Domain returns the domain called name, creating it if needed.
func (s *Store) Domain(name string) *Domain {
	if d, ok := s.index[name]; ok {
		return d
	}
	d := &Domain{Name: name}
	s.index[name] = d
	s.Domains = append(s.Domains, d)
	return d
}

func (s *Store) Add(r parser.Record) {
	u := s.Domain(r.Domain).User(r.User)
	u.Received.Add(r.Protocol, r.Received)
	u.Sent.Add(r.Protocol, r.Sent)
}

// Lookup returns the user without creating it.
func (s *Store) Lookup(domain, user string) (*User, bool) {
	d, ok := s.index[domain]
	if !ok {
		return nil, false
	}
	u, ok := d.index[user]
	return u, ok
}

func (s *Store) Total() uint64 {
	var total uint64
	for _, d := range s.Domains {
		total += d.Total()
	}
	return total
}

func (s *Store) Empty() bool {
	return len(s.Domains) == 0
}
