package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// GraphNode represents a node in the graph visualization.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// GraphEdge represents an edge in the graph visualization.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
	Type   string `json:"type"`
}

// GraphExport represents the complete graph for visualization.
type GraphExport struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Stats GraphStats  `json:"stats"`
}

// GraphStats contains summary statistics for the graph.
type GraphStats struct {
	TotalNodes  int            `json:"total_nodes"`
	TotalEdges  int            `json:"total_edges"`
	NodesByType map[string]int `json:"nodes_by_type"`
	EdgesByType map[string]int `json:"edges_by_type"`
}

// Node types of an exported concept graph.
const (
	NodeConcept       = "Concept"
	NodeLegacyConcept = "LegacyConcept"
)

// relationPredicates are the predicates exported as edges.
var relationPredicates = []string{
	TermBroader,
	TermNarrower,
	TermRelated,
	TermExactMatch,
	TermCloseMatch,
}

// ExportGraph exports the concepts of a store and the SKOS relations between
// them. Targets that are not concepts of the store, such as legacy
// counterparts, become LegacyConcept nodes.
func ExportGraph(store *TripleStore) *GraphExport {
	export := &GraphExport{
		Nodes: make([]GraphNode, 0),
		Edges: make([]GraphEdge, 0),
		Stats: GraphStats{
			NodesByType: make(map[string]int),
			EdgesByType: make(map[string]int),
		},
	}

	seen := make(map[string]bool)
	addNode := func(node GraphNode) {
		if seen[node.ID] {
			return
		}
		seen[node.ID] = true
		export.Nodes = append(export.Nodes, node)
		export.Stats.NodesByType[node.Type]++
	}

	concepts := store.SubjectsWith(TermType, TermConcept)
	for _, subject := range concepts {
		addNode(graphNode(store, subject))
	}

	for _, subject := range concepts {
		for _, predicate := range relationPredicates {
			for _, object := range store.Objects(subject, predicate) {
				addNode(graphNode(store, object))

				label := LocalName(predicate)
				export.Edges = append(export.Edges, GraphEdge{
					Source: subject,
					Target: object,
					Label:  label,
					Type:   predicate,
				})
				export.Stats.EdgesByType[label]++
			}
		}
	}

	export.Stats.TotalNodes = len(export.Nodes)
	export.Stats.TotalEdges = len(export.Edges)

	return export
}

// graphNode describes id as a Concept node when the store types it
// skos:Concept, and as a LegacyConcept node otherwise.
func graphNode(store *TripleStore, id string) GraphNode {
	if store.Exists(id, TermType, TermConcept) {
		return GraphNode{ID: id, Label: nodeLabel(store, id), Type: NodeConcept}
	}
	return GraphNode{ID: id, Label: LocalName(id), Type: NodeLegacyConcept}
}

// nodeLabel returns the rdfs:label of subject, or its local name.
func nodeLabel(store *TripleStore, subject string) string {
	if value, _, ok := LiteralValue(store.GetOne(subject, TermLabel)); ok && value != "" {
		return value
	}
	return LocalName(subject)
}

// ToJSON serializes the graph export to JSON.
func (g *GraphExport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// ToDOT exports the graph in DOT format for Graphviz.
func (g *GraphExport) ToDOT() string {
	var sb strings.Builder

	sb.WriteString("digraph ConceptScheme {\n")
	sb.WriteString("  rankdir=BT;\n")
	sb.WriteString("  node [shape=box];\n\n")

	typeColors := map[string]string{
		NodeConcept:       "lightblue",
		NodeLegacyConcept: "lightgray",
	}

	for _, node := range g.Nodes {
		color := typeColors[node.Type]
		if color == "" {
			color = "white"
		}
		label := node.Label
		if len(label) > 30 {
			label = label[:30] + "..."
		}
		fmt.Fprintf(&sb, "  %s [label=%s style=filled fillcolor=%s];\n",
			dotQuote(node.ID), dotQuote(label), color)
	}

	sb.WriteString("\n")

	edgeStyles := map[string]string{
		"broader":    "color=blue",
		"narrower":   "color=blue style=dashed",
		"related":    "color=green dir=none",
		"exactMatch": "color=red",
		"closeMatch": "color=orange",
	}

	for _, edge := range g.Edges {
		style := edgeStyles[edge.Label]
		if style == "" {
			style = "color=black"
		}
		fmt.Fprintf(&sb, "  %s -> %s [label=%s %s];\n",
			dotQuote(edge.Source), dotQuote(edge.Target), dotQuote(edge.Label), style)
	}

	sb.WriteString("}\n")
	return sb.String()
}

func dotQuote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

// RelationshipSummary provides a summary of the relations of a concept
// scheme.
type RelationshipSummary struct {
	TotalRelationships int               `json:"total_relationships"`
	RelationshipCounts map[string]int    `json:"relationship_counts"`
	TopConcepts        int               `json:"top_concepts"`
	MostSpecialized    []ConceptRefCount `json:"most_specialized"`
}

// ConceptRefCount holds the number of concepts naming a concept as broader.
type ConceptRefCount struct {
	Concept string `json:"concept"`
	Count   int    `json:"count"`
}

// CalculateRelationshipSummary counts the relations per predicate, the
// concepts without a broader concept and the ten concepts with the most
// narrower concepts.
func CalculateRelationshipSummary(store *TripleStore) *RelationshipSummary {
	summary := &RelationshipSummary{
		RelationshipCounts: make(map[string]int),
	}

	incoming := make(map[string]int)
	var order []string

	for _, subject := range store.SubjectsWith(TermType, TermConcept) {
		broader := store.Objects(subject, TermBroader)
		if len(broader) == 0 {
			summary.TopConcepts++
		}
		for _, target := range broader {
			if _, counted := incoming[target]; !counted {
				order = append(order, target)
			}
			incoming[target]++
		}

		for _, predicate := range relationPredicates {
			count := len(store.Objects(subject, predicate))
			if count == 0 {
				continue
			}
			summary.TotalRelationships += count
			summary.RelationshipCounts[predicate] += count
		}
	}

	for _, concept := range order {
		summary.MostSpecialized = append(summary.MostSpecialized, ConceptRefCount{
			Concept: concept,
			Count:   incoming[concept],
		})
	}
	sort.SliceStable(summary.MostSpecialized, func(i, j int) bool {
		return summary.MostSpecialized[i].Count > summary.MostSpecialized[j].Count
	})
	if len(summary.MostSpecialized) > 10 {
		summary.MostSpecialized = summary.MostSpecialized[:10]
	}

	return summary
}
