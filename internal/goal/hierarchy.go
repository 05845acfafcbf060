package goal

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grupoclick/clickcheck/internal/user"
)

// Directory is an in-memory snapshot of the user table taken once per
// progress computation, so hierarchy resolution never goes back to the
// database.
type Directory struct {
	byID     map[uuid.UUID]user.User
	children map[uuid.UUID][]uuid.UUID
	managers []uuid.UUID
}

// BuildDirectory indexes users by id and inverts the manager references
// into an adjacency list. Manager order and children order follow the
// input order, so a sorted snapshot yields deterministic output.
func BuildDirectory(users []user.User) *Directory {
	d := &Directory{
		byID:     make(map[uuid.UUID]user.User, len(users)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, u := range users {
		d.byID[u.ID] = u
	}
	seen := make(map[uuid.UUID]bool)
	for _, u := range users {
		if u.ManagerID == nil {
			continue
		}
		mgr := *u.ManagerID
		d.children[mgr] = append(d.children[mgr], u.ID)
		if !seen[mgr] {
			seen[mgr] = true
			d.managers = append(d.managers, mgr)
		}
	}
	return d
}

func (d *Directory) User(id uuid.UUID) (user.User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

// ManagerIDs returns every user referenced as someone's manager, in
// first-appearance order.
func (d *Directory) ManagerIDs() []uuid.UUID {
	return d.managers
}

// Resolver walks the manager tree and collects transitive subordinates.
// A visited set guarantees termination and no duplicates even when the
// data contains a managerial cycle; the depth cap additionally bounds
// pathological chains.
type Resolver struct {
	dir      *Directory
	maxDepth int
	cache    map[uuid.UUID][]uuid.UUID
	log      *logrus.Entry
}

func NewResolver(dir *Directory, maxDepth int, log *logrus.Entry) *Resolver {
	return &Resolver{
		dir:      dir,
		maxDepth: maxDepth,
		cache:    make(map[uuid.UUID][]uuid.UUID),
		log:      log,
	}
}

// Subordinates returns every direct and indirect report of managerID.
// The manager itself is never part of the result, even through a cycle.
func (r *Resolver) Subordinates(managerID uuid.UUID) []uuid.UUID {
	if cached, ok := r.cache[managerID]; ok {
		return cached
	}

	visited := map[uuid.UUID]bool{managerID: true}
	subs := []uuid.UUID{}
	r.expand(managerID, 0, visited, &subs)

	r.cache[managerID] = subs
	return subs
}

func (r *Resolver) expand(id uuid.UUID, depth int, visited map[uuid.UUID]bool, out *[]uuid.UUID) {
	if depth > r.maxDepth {
		if len(r.dir.children[id]) > 0 && r.log != nil {
			r.log.WithFields(logrus.Fields{
				"manager_id": id,
				"max_depth":  r.maxDepth,
			}).Warn("hierarchy depth cap reached, truncating subtree")
		}
		return
	}
	for _, child := range r.dir.children[id] {
		if visited[child] {
			continue
		}
		visited[child] = true
		*out = append(*out, child)
		r.expand(child, depth+1, visited, out)
	}
}
