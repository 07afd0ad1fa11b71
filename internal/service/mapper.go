package service

import (
	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/dto"
	"github.com/learncss/Annotum/pkg/jats"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// articleToJATS converts the stored article into the render model.
func articleToJATS(a *domain.Article) (jats.Article, error) {
	out := jats.Article{
		ID:              a.ID,
		Title:           a.Title,
		Subtitle:        a.Subtitle,
		Abstract:        a.Excerpt,
		Body:            a.Content,
		PublishedAt:     a.PublishedAt,
		Category:        a.Category,
		Tags:            a.Tags,
		DOI:             a.Meta.DOI,
		Funding:         a.Meta.Funding,
		Volume:          a.Meta.Volume,
		Issue:           a.Meta.Issue,
		FirstPage:       a.Meta.FirstPage,
		LastPage:        a.Meta.LastPage,
		Received:        a.Meta.Received,
		Accepted:        a.Meta.Accepted,
		AuthorNotes:     a.Meta.AuthorNotes,
		Appendices:      a.Meta.Appendices,
		Acknowledgments: a.Meta.Acknowledgments,
	}
	if len(a.Authors) > 0 {
		out.Authors = make([]jats.Author, len(a.Authors))
		if err := copier.Copy(&out.Authors, &a.Authors); err != nil {
			return out, errors.Wrap(err, "copy authors")
		}
	}
	return out, nil
}

func userToJATS(u *domain.User) *jats.User {
	if u == nil {
		return nil
	}
	return &jats.User{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.Name(),
		Email:       u.Email,
		Link:        u.Link,
		Bio:         u.Bio,
		Prefix:      u.Prefix,
		Suffix:      u.Suffix,
		Affiliation: u.Affiliation,
		Institution: u.Institution,
	}
}

// commentToJATS falls back to the anonymous form when the commenter's
// account no longer exists.
func commentToJATS(c *domain.Comment, users map[int64]*domain.User) jats.Comment {
	out := jats.Comment{
		AuthorName: c.AuthorName,
		AuthorLink: c.AuthorURL,
		Content:    c.Content,
		Date:       c.CreatedAt,
	}
	if c.UID != 0 {
		out.User = userToJATS(users[c.UID])
	}
	return out
}

func articleToDTO(a *domain.Article, withContent bool) *dto.ArticleDTO {
	if a == nil {
		return nil
	}
	out := &dto.ArticleDTO{}
	_ = copier.Copy(out, a)
	out.Status = string(a.Status)
	_ = copier.Copy(&out.Meta, &a.Meta)
	out.Authors = make([]dto.AuthorDTO, 0, len(a.Authors))
	_ = copier.Copy(&out.Authors, &a.Authors)
	if !withContent {
		out.Content = ""
	}
	return out
}

func commentToDTO(c *domain.Comment) *dto.CommentDTO {
	out := &dto.CommentDTO{}
	_ = copier.Copy(out, c)
	return out
}

func userToDTO(u *domain.User) *dto.UserDTO {
	if u == nil {
		return nil
	}
	out := &dto.UserDTO{}
	_ = copier.Copy(out, u)
	return out
}
