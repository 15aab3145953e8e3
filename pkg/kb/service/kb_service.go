package service

import "vita/entities"

type KBService interface {
	UpsertDocument(title, tags, text, sourceURL string) (*entities.KBDocument, int, error)
	Search(query string, k int) ([]entities.KBChunk, error)
	Context(query string) string
	DocsMeta(ids []uint) (map[uint]entities.KBDocument, error)
}
