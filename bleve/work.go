package bleve

import (
	"strconv"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"github.com/bobinette/deptlib"
)

const defaultLimit = 20

type WorkIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it when it does not exist yet.
func (s *WorkIndex) Open(path string) error {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, workMapping())
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *WorkIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

func workMapping() mapping.IndexMapping {
	text := func(analyzer string) *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = analyzer
		return f
	}

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("title", text(en.AnalyzerName))
	doc.AddFieldMappingsAt("annotation", text(en.AnalyzerName))
	doc.AddFieldMappingsAt("authors", text(simple.Name))
	doc.AddFieldMappingsAt("city", text(simple.Name))

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Index stores the searchable fields of work. authors are the resolved
// authors of the work, indexed by name.
func (s *WorkIndex) Index(work deptlib.Work, authors []deptlib.Author) error {
	names := make([]string, len(authors))
	for i, author := range authors {
		names[i] = author.Name
	}

	data := map[string]interface{}{
		"title":      work.Title,
		"annotation": work.Annotation,
		"authors":    names,
		"city":       work.City,
	}

	return s.index.Index(strconv.Itoa(work.ID), data)
}

func (s *WorkIndex) Delete(id int) error {
	return s.index.Delete(strconv.Itoa(id))
}

func (s *WorkIndex) Search(search deptlib.WorkSearch) (deptlib.WorkSearchResults, error) {
	q := andQ(
		query.NewMatchAllQuery(),
		s.searchWords(search.Q),
	)

	searchRequest := bleve.NewSearchRequest(q)
	searchRequest.SortBy([]string{"_id"})

	if search.Limit == 0 {
		search.Limit = defaultLimit
	}
	searchRequest.Size = int(search.Limit)
	searchRequest.From = int(search.Offset)

	searchResults, err := s.index.Search(searchRequest)
	if err != nil {
		return deptlib.WorkSearchResults{}, err
	}

	ids := make([]int, len(searchResults.Hits))
	for i, hit := range searchResults.Hits {
		ids[i], err = strconv.Atoi(hit.ID)
		if err != nil {
			return deptlib.WorkSearchResults{}, err
		}
	}

	return deptlib.WorkSearchResults{
		IDs: ids,
		Pagination: deptlib.Pagination{
			Total:  searchResults.Total,
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	}, nil
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}

// searchWords requires every word of queryString to prefix-match the title,
// the annotation or an author name.
func (s *WorkIndex) searchWords(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, orQ(
			s.prefixQuery(word, "title", en.AnalyzerName),
			s.prefixQuery(word, "annotation", en.AnalyzerName),
			s.prefixQuery(word, "authors", simple.Name),
		))
	}

	return andQ(ands...)
}

func (s *WorkIndex) prefixQuery(queryString, field, analyzerName string) query.Query {
	analyzer := s.index.Mapping().AnalyzerNamed(analyzerName)
	tokens := analyzer.Analyze([]byte(queryString))
	if len(tokens) == 0 {
		return nil
	}

	conjuncs := make([]query.Query, len(tokens))
	for i, token := range tokens {
		pq := query.NewPrefixQuery(string(token.Term))
		pq.SetField(field)
		conjuncs[i] = pq
	}

	return query.NewConjunctionQuery(conjuncs)
}
