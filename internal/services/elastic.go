package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"velora_back_end/internal/models"
)

const productIndex = "products"

// ElasticIndex maintient l'index plein texte des produits. Toutes les
// méthodes tolèrent un receveur nil : sans Elasticsearch, l'indexation est
// ignorée et la recherche retombe sur SQL.
type ElasticIndex struct {
	client *elasticsearch.Client
}

func NewElasticIndex(client *elasticsearch.Client) *ElasticIndex {
	if client == nil {
		return nil
	}
	return &ElasticIndex{client: client}
}

// IndexProduct indexe (ou réindexe) un produit. Best effort : une erreur
// d'indexation est loggée, jamais remontée au client.
func (e *ElasticIndex) IndexProduct(ctx context.Context, p models.Product) {
	if e == nil {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Name, res.String())
	}
}

func (e *ElasticIndex) DeleteProduct(ctx context.Context, id string) {
	if e == nil {
		return
	}

	req := esapi.DeleteRequest{Index: productIndex, DocumentID: id}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	res.Body.Close()
}

// Search interroge l'index sur nom, description et marque.
func (e *ElasticIndex) Search(ctx context.Context, query string) ([]models.Product, error) {
	if e == nil {
		return nil, fmt.Errorf("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"name", "description", "brand"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("index non trouvé ou vide")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %w", err)
	}

	products := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
