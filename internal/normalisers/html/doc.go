// Package html provides a Normaliser implementation for HTML documents,
// including the "web page" exports of word processors. Ordered list
// numbering, which browsers render but the markup omits, is written back
// into the text so the quiz parser can see question and option markers.
package html
