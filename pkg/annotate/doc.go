/*
Package annotate decorates the rendered markup of chat paragraphs.

Two stylings are supported. VariantNames wraps the speaker name at the start
of every line in a colored span:

	annotate.Annotate("Bob: hi<br>Ann: yo", annotate.Config{Variant: annotate.VariantNames, NameColor: "#f00"})

VariantFull additionally colors the paragraph text and every <q> element.
Every injected element or attribute carries a data-autoquote-* marker so
Unannotate can restore the markup exactly:

	annotate.Unannotate(annotate.Annotate(h, cfg)) == h

Break tags are located with a heuristic pattern; markup with unbalanced tags
may be split in surprising places.
*/
package annotate
