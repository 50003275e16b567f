// SPDX-License-Identifier: MIT

package gramfe

// TruncationOrders returns the number of cosine and sine Taylor terms for
// ghost-zone width g: cos = ⌈g/2⌉, and sin = cos−1 for even g, cos for odd g.
// The combined polynomial then has degree g−1 or less in C. g < 1 yields (0, 0).
func TruncationOrders(g int) (cosTerms, sinTerms int) {
	if g < 1 {
		return 0, 0
	}
	cosTerms = (g + 1) / 2
	sinTerms = cosTerms
	if g%2 == 0 {
		sinTerms--
	}

	return cosTerms, sinTerms
}
