package jats

import (
	"strconv"
	"strings"
)

// InstitutionSeparator separates institution names inside Author.Institution.
const InstitutionSeparator = " | "

// Affiliations is the deduplicated institution list of an author group.
type Affiliations struct {
	// Institutions in first-occurrence order; position i has index i+1.
	Institutions []string
	// Bodies holds the affiliation text of the first author naming each institution.
	Bodies []string
	// Refs holds, per author, the 1-based indexes of the institutions that
	// author names, in canonical order. nil for authors without data.
	Refs [][]int
}

// DedupInstitutions builds the canonical institution list for authors.
// DedupInstitutions 去重机构列表并计算每位作者的 1 基索引
func DedupInstitutions(authors []Author) Affiliations {
	aff := Affiliations{Refs: make([][]int, len(authors))}
	index := make(map[string]int)
	segments := make([][]string, len(authors))

	for i := range authors {
		a := &authors[i]
		if !a.HasAffiliation() {
			continue
		}
		segments[i] = strings.Split(a.Institution, InstitutionSeparator)
		for _, name := range segments[i] {
			if _, ok := index[name]; ok {
				continue
			}
			index[name] = len(aff.Institutions)
			aff.Institutions = append(aff.Institutions, name)
			aff.Bodies = append(aff.Bodies, a.Affiliation)
		}
	}

	for i, segs := range segments {
		if segs == nil {
			continue
		}
		seen := make([]bool, len(aff.Institutions))
		for _, name := range segs {
			seen[index[name]] = true
		}
		refs := make([]int, 0, len(segs))
		for pos, ok := range seen {
			if ok {
				refs = append(refs, pos+1)
			}
		}
		aff.Refs[i] = refs
	}
	return aff
}

// affID returns the id shared by an xref and its aff entry.
func affID(index int) string {
	return "aff" + strconv.Itoa(index)
}

// affXrefs renders an author's cross references.
func affXrefs(refs []int) []*Node {
	out := make([]*Node, 0, len(refs))
	for _, idx := range refs {
		n := strconv.Itoa(idx)
		out = append(out, El("xref", El("sup", Text(n))).
			Attr("ref-type", "aff").
			Attr("rid", affID(idx)))
	}
	return out
}

// affList renders the <aff> entries. In legacy mode every entry uses the last
// author's text and the list exists only if that author has data.
func affList(authors []Author, aff Affiliations, legacy bool) []*Node {
	if len(aff.Institutions) == 0 {
		return nil
	}
	var last *Author
	if legacy {
		last = &authors[len(authors)-1]
		if !last.HasAffiliation() {
			return nil
		}
	}

	out := make([]*Node, 0, len(aff.Institutions))
	for i, name := range aff.Institutions {
		body, inst := aff.Bodies[i], name
		if legacy {
			body = last.Affiliation
			if last.Institution == "" {
				inst = ""
			}
		}
		n := El("aff").Attr("id", affID(i+1))
		if body != "" {
			n.Append(Text(body))
		}
		if inst != "" {
			n.Append(El("institution", El("sup", Text(strconv.Itoa(i+1))), Text(inst)))
		}
		out = append(out, n)
	}
	return out
}
