package expr

import (
	"fmt"
	"os/user"
	"strconv"
)

// Resolver maps user and group names to numeric ids.
type Resolver interface {
	LookupUser(name string) (uint32, error)
	LookupGroup(name string) (uint32, error)
}

// OSResolver resolves names through the system user and group database.
type OSResolver struct{}

func (OSResolver) LookupUser(name string) (uint32, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return 0, err
	}
	return parseID(u.Uid)
}

func (OSResolver) LookupGroup(name string) (uint32, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, err
	}
	return parseID(g.Gid)
}

func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("non-numeric id %q: %w", s, err)
	}
	return uint32(id), nil
}

// resolveUser turns a -user argument into a UID. All-digit values are taken
// as ids without consulting the database.
func resolveUser(r Resolver, value string) (uint32, error) {
	if isNumeric(value) {
		id, err := parseID(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrUnknownUser, value)
		}
		return id, nil
	}
	id, err := r.LookupUser(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUser, value)
	}
	return id, nil
}

// resolveGroup is resolveUser for -group.
func resolveGroup(r Resolver, value string) (uint32, error) {
	if isNumeric(value) {
		id, err := parseID(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrUnknownGroup, value)
		}
		return id, nil
	}
	id, err := r.LookupGroup(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownGroup, value)
	}
	return id, nil
}
