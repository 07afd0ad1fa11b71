package jats

import (
	"strconv"
)

// SubjectHeading is the subject written for any categorized article.
const SubjectHeading = "Original Research Article"

func buildFront(d *Document, o *Options) *Node {
	return El("front",
		journalMeta(&d.Journal),
		articleMeta(d, o),
	)
}

func journalMeta(j *Journal) *Node {
	var journalID *Node
	if j.ID != "" {
		journalID = El("journal-id", Text(j.ID))
		if j.IDType != "" {
			journalID.Attr("journal-id-type", j.IDType)
		}
	}
	return wrap("journal-meta",
		journalID,
		wrap("journal-title-group", optional("journal-title", j.Title)),
		optional("abbrev-journal-title", j.AbbrevTitle, "abbrev-type", "full"),
		optional("issn", j.ISSN, "pub-type", "ppub"),
		wrap("publisher",
			optional("publisher-name", j.PublisherName),
			optional("publisher-loc", j.PublisherLocation),
		),
	)
}

func articleMeta(d *Document, o *Options) *Node {
	a := &d.Article

	meta := El("article-meta",
		optional("article-id", a.DOI, "pub-id-type", "doi"),
		category(a.Category),
		titleGroup(a.Title, a.Subtitle),
		contribGroup(a.Authors, o.LegacyAffiliations),
	)
	if a.AuthorNotes != "" {
		meta.Append(El("author-notes", Raw(a.AuthorNotes)))
	}
	meta.Append(pubDates(a.PublishedAt)...)
	meta.Append(
		optional("volume", a.Volume),
		optional("issue", a.Issue),
		optional("fpage", a.FirstPage),
		optional("lpage", a.LastPage),
		history(a.Received, a.Accepted),
		permissions(d.Journal.PublisherName, o.Now().Year()),
		optional("abstract", a.Abstract),
		keywords(a.Tags),
		wrap("funding-group", optional("funding-statement", a.Funding)),
	)
	meta.Append(relatedArticles(d.Related, &d.Journal)...)
	if meta.Empty() {
		return nil
	}
	return meta
}

func category(term string) *Node {
	if term == "" {
		return nil
	}
	return El("article-categories",
		El("subj-group", El("subject", Text(SubjectHeading))).Attr("subj-group-type", "heading"),
	)
}

// titleGroup self-closes article-title when only a subtitle exists.
func titleGroup(title, subtitle string) *Node {
	if title == "" && subtitle == "" {
		return nil
	}
	t := El("article-title")
	if title != "" {
		t.Append(Text(title))
	}
	return El("title-group", t, optional("subtitle", subtitle))
}

func contribGroup(authors []Author, legacy bool) *Node {
	if len(authors) == 0 {
		return nil
	}
	aff := DedupInstitutions(authors)
	g := El("contrib-group")
	for i := range authors {
		g.Append(contrib(&authors[i], aff.Refs[i]))
	}
	g.Append(affList(authors, aff, legacy)...)
	return g
}

func contrib(a *Author, refs []int) *Node {
	c := El("contrib",
		wrap("name",
			optional("surname", a.Surname),
			optional("given-names", a.GivenNames),
			optional("prefix", a.Prefix),
			optional("suffix", a.Suffix),
		),
		optional("degrees", a.Degrees),
	).Attr("contrib-type", "author").Attr("corresp", "yes")
	c.Append(affXrefs(refs)...)
	c.Append(
		wrap("bio", optional("p", a.Bio)),
		extLink(a.Link),
	)
	return c
}

// history is omitted without a received date.
func history(received, accepted string) *Node {
	r := historyDate("received", received)
	if r == nil {
		return nil
	}
	return El("history", r, historyDate("accepted", accepted))
}

func permissions(publisher string, year int) *Node {
	if publisher == "" {
		return nil
	}
	y := strconv.Itoa(year)
	return El("permissions",
		El("copyright-statement", Text("© "+y+" "+publisher)),
		El("copyright-year", Text(y)),
		El("copyright-holder", Text(publisher)),
	)
}

func keywords(tags []string) *Node {
	g := El("kwd-group").Attr("kwd-group-type", "simple")
	for _, t := range tags {
		g.Append(optional("kwd", t))
	}
	if g.Empty() {
		return nil
	}
	return g
}

func relatedArticles(related []RelatedArticle, j *Journal) []*Node {
	var out []*Node
	for _, r := range related {
		if !r.Published {
			continue
		}
		n := El("related-article").
			Attr("id", "a"+strconv.FormatInt(r.ID, 10)).
			Attr("related-article-type", "companion").
			Attr("ext-link-type", "uri").
			Attr("xlink:href", SafeURL(r.Permalink))
		if r.DOI != "" {
			n.Attr("elocation-id", r.DOI)
		}
		if j.ID != "" {
			n.Attr("journal_id", j.ID)
		}
		if j.IDType != "" {
			n.Attr("journal_id_type", j.IDType)
		}
		out = append(out, n)
	}
	return out
}
