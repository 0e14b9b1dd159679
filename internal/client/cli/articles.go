package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vagueame/galaxyterm/internal/client/api"
)

// Articles lists one page of published articles. Available to guests.
func (a *App) Articles(ctx context.Context, page int) error {
	p, err := a.client.ListPublicArticles(ctx, page, 0)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	for _, item := range p.Articles {
		printlnFn(formatSummary(item))
	}
	printlnFn(fmt.Sprintf("Page %d of %d (%d articles)", p.CurrentPage, p.Pages, p.Total))
	return nil
}

// MyArticles lists the user's own articles, drafts included.
func (a *App) MyArticles(ctx context.Context) error {
	items, err := a.client.ListMyArticles(ctx)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}
	if len(items) == 0 {
		printlnFn("No articles yet. Try 'post'.")
		return nil
	}
	for _, item := range items {
		printlnFn(formatSummary(item))
	}
	return nil
}

// ReadArticle prints one article in full.
func (a *App) ReadArticle(ctx context.Context, id int) error {
	article, err := a.client.GetArticle(ctx, id)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("#", article.Title)
	if article.Author != "" {
		printlnFn("by", article.Author, " ", article.UpdatedAt)
	}
	if len(article.Tags) > 0 {
		printlnFn("tags:", strings.Join(article.Tags, ", "))
	}
	printlnFn("")
	printlnFn(article.Markdown)
	return nil
}

// PostArticle collects a title, markdown body, tags and visibility, then
// saves the article and prints its assigned ID.
func (a *App) PostArticle(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Enter article text (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}
	tagLine, err := getSimpleText(a.reader, "Enter tags (comma separated, empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	publish, err := getSimpleText(a.reader, "Publish now? (y/N)", os.Stdout)
	if err != nil {
		return err
	}

	draft := api.ArticleDraft{
		Title:    title,
		Markdown: body,
		Tags:     splitTags(tagLine),
		Status:   "draft",
	}
	if strings.EqualFold(publish, "y") || strings.EqualFold(publish, "yes") {
		draft.Status = "published"
	}

	id, err := a.client.SaveArticle(ctx, draft)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}
	printlnFn(fmt.Sprintf("Saved as article %d (%s).", id, draft.Status))
	return nil
}

// DeleteArticle removes one of the user's own articles.
func (a *App) DeleteArticle(ctx context.Context, id int) error {
	if err := a.client.DeleteArticle(ctx, id); err != nil {
		a.reportErr(ctx, err)
		return err
	}
	printlnFn("Deleted.")
	return nil
}

// Search queries article titles or authors and prints the hits.
func (a *App) Search(ctx context.Context, kind api.SearchKind, query string) error {
	res, err := a.client.Search(ctx, kind, query, 0)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	switch kind {
	case api.SearchByAuthor:
		if len(res.Authors) == 0 {
			printlnFn("No authors found.")
			return nil
		}
		for _, hit := range res.Authors {
			printlnFn(fmt.Sprintf("%s (%s) %s", hit.Nickname, hit.Username, hit.Motto))
		}
	default:
		if len(res.Articles) == 0 {
			printlnFn("No articles found.")
			return nil
		}
		for _, item := range res.Articles {
			printlnFn(formatSummary(item))
		}
	}
	if res.HasMore {
		printlnFn("(more results available)")
	}
	return nil
}

func formatSummary(item api.ArticleSummary) string {
	s := fmt.Sprintf("[%d] %s", item.ID, item.Title)
	if item.Status == "draft" {
		s += " (draft)"
	}
	if len(item.Tags) > 0 {
		s += "  #" + strings.Join(item.Tags, " #")
	}
	return s
}

func splitTags(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
