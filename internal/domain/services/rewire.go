package services

import (
	"fmt"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

// FirstOwnerHistory returns the model's canonical change-tracking record:
// its first IfcOwnerHistory, or nil when the model has none.
func FirstOwnerHistory(m *model.Model) *model.Entity {
	histories := m.EntitiesOfType("IfcOwnerHistory")
	if len(histories) == 0 {
		return nil
	}
	return histories[0]
}

// CopyInverseRelations re-creates, in the target model, the donor entity's
// inbound relationships that matter for a placed element: type assignment,
// property-set assignment and material association. These are reachable
// only through the source model's inverse-reference index, never by
// forward traversal from the donor itself. All relating definitions are
// migrated through mi, whose identity cache guarantees a shared definition
// is cloned exactly once across relations.
func CopyInverseRelations(srcModel, dstModel *model.Model, srcEntity, dstEntity *model.Entity, mi *Migrator) error {
	ownerHistory := FirstOwnerHistory(dstModel)
	if ownerHistory == nil {
		ownerHistory = dstEntity.RefEntity("OwnerHistory")
	}

	for _, relation := range srcModel.InverseReferences(srcEntity) {
		switch {
		case relation.IsA("IfcRelDefinesByType"):
			targetType, err := mi.Migrate(relation.RefEntity("RelatingType"), dstModel)
			if err != nil {
				return fmt.Errorf("migrating relating type: %w", err)
			}
			_, err = dstModel.NewEntity("IfcRelDefinesByType",
				model.Str(mi.newID()),
				refOrNull(ownerHistory),
				relation.Attr("Name"),
				relation.Attr("Description"),
				model.List{model.RefTo(dstEntity)},
				model.RefTo(targetType),
			)
			if err != nil {
				return err
			}

		case relation.IsA("IfcRelDefinesByProperties"):
			targetPset, err := mi.Migrate(relation.RefEntity("RelatingPropertyDefinition"), dstModel)
			if err != nil {
				return fmt.Errorf("migrating property definition: %w", err)
			}
			_, err = dstModel.NewEntity("IfcRelDefinesByProperties",
				model.Str(mi.newID()),
				refOrNull(ownerHistory),
				relation.Attr("Name"),
				relation.Attr("Description"),
				model.List{model.RefTo(dstEntity)},
				model.RefTo(targetPset),
			)
			if err != nil {
				return err
			}

		case relation.IsA("IfcRelAssociatesMaterial"):
			targetMaterial, err := mi.Migrate(relation.RefEntity("RelatingMaterial"), dstModel)
			if err != nil {
				return fmt.Errorf("migrating material: %w", err)
			}

			// The donor and its type object are the only classes expected
			// among the relation's related objects; anything else is
			// dropped by construction.
			var related model.List
			for _, srcRelated := range model.EntityList(relation.Attr("RelatedObjects")) {
				switch {
				case srcRelated == srcEntity:
					related = append(related, model.RefTo(dstEntity))
				case srcRelated.IsA("IfcTypeObject"):
					clone, err := mi.Migrate(srcRelated, dstModel)
					if err != nil {
						return fmt.Errorf("migrating related type object: %w", err)
					}
					related = append(related, model.RefTo(clone))
				}
			}
			if len(related) == 0 {
				continue
			}
			_, err = dstModel.NewEntity("IfcRelAssociatesMaterial",
				model.Str(mi.newID()),
				refOrNull(ownerHistory),
				relation.Attr("Name"),
				relation.Attr("Description"),
				related,
				model.RefTo(targetMaterial),
			)
			if err != nil {
				return err
			}

		default:
			// Containment, aggregation and similar inbound relations are
			// the placement pipeline's job in the target model; skipping
			// them here is deliberate.
		}
	}
	return nil
}

// AttachToContainer adds product to the container's spatial containment
// relation, creating the relation when the container has none. The append
// is idempotent: a product already contained is not inserted again, and
// co-located siblings are preserved.
func AttachToContainer(m *model.Model, container, product *model.Entity) error {
	for _, rel := range m.InverseReferences(container) {
		if !rel.IsA("IfcRelContainedInSpatialStructure") {
			continue
		}
		if rel.RefEntity("RelatingStructure") != container {
			continue
		}
		elements, _ := model.AsList(rel.Attr("RelatedElements"))
		for _, e := range model.EntityList(rel.Attr("RelatedElements")) {
			if e == product {
				return nil
			}
		}
		return rel.SetAttr("RelatedElements", append(elements, model.RefTo(product)))
	}

	ownerHistory := FirstOwnerHistory(m)
	if ownerHistory == nil {
		ownerHistory = product.RefEntity("OwnerHistory")
	}
	_, err := m.NewEntity("IfcRelContainedInSpatialStructure",
		model.Str(model.NewGlobalID()),
		refOrNull(ownerHistory),
		model.Null{},
		model.Null{},
		model.List{model.RefTo(product)},
		model.RefTo(container),
	)
	return err
}

func refOrNull(e *model.Entity) model.Value {
	if e == nil {
		return model.Null{}
	}
	return model.RefTo(e)
}
