package annotate

// damerauLevenshtein: редакционное расстояние с транспозицией соседних символов.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	al, bl := len(ra), len(rb)

	dp := make([][]int, al+1)
	for i := range dp {
		dp[i] = make([]int, bl+1)
		dp[i][0] = i
	}
	for j := 0; j <= bl; j++ {
		dp[0][j] = j
	}
	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			dp[i][j] = min(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				dp[i][j] = min(dp[i][j], dp[i-2][j-2]+1)
			}
		}
	}
	return dp[al][bl]
}

// suggest returns the header closest to want, or "" when nothing is within
// a third of its length (at least 1 edit).
func suggest(headers []string, want string) string {
	nWant := normHeaderKey(want)
	if nWant == "" {
		return ""
	}
	limit := max(1, len([]rune(nWant))/3)
	best, bestDist := "", limit+1
	for _, h := range headers {
		if d := damerauLevenshtein(normHeaderKey(h), nWant); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}
