package prover

import (
	"github.com/brunokim/rewrite-search/logic"
	"github.com/brunokim/rewrite-search/proof"
	"github.com/brunokim/rewrite-search/rules"
	"github.com/brunokim/rewrite-search/search"
)

// Host searches logic terms with the rules of a catalogue, building proof certificates.
type Host struct {
	Catalogue *rules.Catalogue
}

var _ search.Host[logic.Term, proof.Proof] = Host{}

func (h Host) Key(t logic.Term) string {
	return logic.Key(t)
}

func (h Host) Rewrites(t logic.Term) ([]search.Rewrite[logic.Term, proof.Proof], error) {
	return h.Catalogue.Rewrites(t)
}

func (h Host) Refl(t logic.Term) proof.Proof {
	return proof.NewRefl(t)
}

func (h Host) Symm(p proof.Proof) proof.Proof {
	return proof.NewSymm(p)
}

func (h Host) Trans(p, q proof.Proof) proof.Proof {
	return proof.NewTrans(p, q)
}
