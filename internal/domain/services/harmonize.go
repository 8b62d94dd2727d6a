package services

import "github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"

// Harmonize retargets every root entity the migration session created to
// the target model's canonical owner history, then removes the migrated
// donor-origin history records that are left unreferenced, cascading over
// their application, user, person and organization records in that order
// (person and organization are only reachable through the user record).
// The canonical record itself is never removed, even when its content
// matches a migrated one.
func Harmonize(target *model.Model, mi *Migrator, canonical *model.Entity) {
	if canonical == nil {
		return
	}

	obsolete := make(map[*model.Entity]bool)
	for _, e := range mi.MigratedEntities(target) {
		if e.IsA("IfcOwnerHistory") {
			obsolete[e] = true
		}
		if !e.Def().Root() {
			continue
		}
		if history := e.RefEntity("OwnerHistory"); history != nil && history != canonical {
			obsolete[history] = true
		}
		_ = e.SetAttr("OwnerHistory", model.RefTo(canonical))
	}

	for history := range obsolete {
		if history == canonical {
			continue
		}
		if len(target.InverseReferences(history)) > 0 {
			continue
		}

		application := history.RefEntity("OwningApplication")
		user := history.RefEntity("OwningUser")
		var person, organization *model.Entity
		if user != nil {
			person = user.RefEntity("ThePerson")
			organization = user.RefEntity("TheOrganization")
		}

		target.Remove(history)
		removeIfOrphan(target, application)
		removeIfOrphan(target, user)
		removeIfOrphan(target, person)
		removeIfOrphan(target, organization)
	}
}

// removeIfOrphan deletes the entity only once nothing references it.
func removeIfOrphan(m *model.Model, e *model.Entity) {
	if e == nil {
		return
	}
	if m.ByHandle(e.ID()) != e {
		return
	}
	if len(m.InverseReferences(e)) > 0 {
		return
	}
	m.Remove(e)
}
