// ===========================================================================
//
// File Name:  relation.go
//
// ===========================================================================

package kgcore

import "strings"

var treatsRelas = map[string]bool{
	"may_treat": true, "treats": true, "treated_by": true, "treatment_of": true,
}
var adverseEffectRelas = map[string]bool{
	"causes": true, "induces": true, "adverse_effect_of": true,
}
var contraindicatedRelas = map[string]bool{
	"contraindicated_with_disease": true, "contraindicated_with": true,
}
var interactsRelas = map[string]bool{
	"interacts_with": true, "ddi": true, "drug_interaction": true,
}
var associatedRels = map[string]bool{"RO": true, "RQ": true}

// MapRelation maps a (rel, rela) pair from MRREL, or an equivalent pair
// from another source, to a canonical predicate, or "" if the pair maps to
// nothing. rela takes precedence over rel when both are present.
func MapRelation(rel, rela string) (Predicate, bool) {
	r := strings.ToLower(rela)
	if r == "" {
		r = strings.ToLower(rel)
	}
	switch {
	case treatsRelas[r]:
		return Treats, true
	case adverseEffectRelas[r]:
		return AdverseEffect, true
	case contraindicatedRelas[r]:
		return ContraindicatedFor, true
	case interactsRelas[r]:
		return InteractsWith, true
	case associatedRels[strings.ToUpper(rel)]:
		return AssociatedWith, true
	default:
		return "", false
	}
}

// MapCTDRelation maps a CTD DirectEvidence string to a canonical predicate:
// TREATS when the evidence mentions "therapeutic", else ASSOCIATED_WITH.
func MapCTDRelation(directEvidence string) Predicate {
	if strings.Contains(strings.ToLower(directEvidence), "therapeutic") {
		return Treats
	}
	return AssociatedWith
}

// drugLike and diseaseLike implement the type-gate predicate groups:
// TREATS/ADVERSE_EFFECT/CONTRAINDICATED_FOR require (drug∪chemical,
// disease); INTERACTS_WITH requires (drug∪chemical, drug∪chemical);
// ASSOCIATED_WITH allows any pair.
func drugLike(et EntityType) bool    { return et == Drug || et == Chemical }
func diseaseLike(et EntityType) bool { return et == Disease }

// PassesTypeGate reports whether a (head type, predicate, tail type) triple
// satisfies the type gate for that predicate.
func PassesTypeGate(headType EntityType, pred Predicate, tailType EntityType) bool {
	switch pred {
	case Treats, AdverseEffect, ContraindicatedFor:
		return drugLike(headType) && diseaseLike(tailType)
	case InteractsWith:
		return drugLike(headType) && drugLike(tailType)
	case AssociatedWith:
		return true
	default:
		return false
	}
}
