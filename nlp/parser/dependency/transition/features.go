package transition

import (
	"strconv"

	"headat/util"
)

// CLIP caps the numeric values (depth, gap, valency) used in features.
const CLIP = 8

const BIAS = "*bias*"

func positional(prefix string, i int, kind, value string) string {
	return prefix + strconv.Itoa(i) + ":" + kind + "='" + value + "'"
}

func (c *Configuration) words(prefix string, positions []int) []string {
	feats := make([]string, len(positions))
	for i, pos := range positions {
		feats[i] = positional(prefix, i, "w", c.utokens[pos])
	}
	return feats
}

func (c *Configuration) tags(prefix string, positions []int) []string {
	feats := make([]string, len(positions))
	for i, pos := range positions {
		feats[i] = positional(prefix, i, "t", c.Tags[pos])
	}
	return feats
}

func firstN(deps []int, n int) []int {
	return deps[:util.Min(len(deps), n)]
}

func lastN(deps []int, n int) []int {
	return deps[util.Max(len(deps)-n, 0):]
}

func join(parts ...string) string {
	var size int
	for _, p := range parts {
		size += len(p) + 1
	}
	buf := make([]byte, 0, size)
	for i, p := range parts {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, p...)
	}
	return string(buf)
}

// Features extracts the sparse feature strings of the configuration. It
// requires a non-empty stack and a non-empty queue. The same configuration
// always yields the same features in the same order.
//
// Stack positions count from the top (s_0 is the top). The conjunction
// features use the deepest of the (up to three) stack positions, and the
// queue window covers at most min(|queue|-1, 3) tokens.
func (c *Configuration) Features(clip int) []string {
	s0, q0 := c.S0(), c.Q0()
	depth := "depth=" + strconv.Itoa(util.Min(c.Depth(), clip))
	gap := "gap=" + strconv.Itoa(util.Min(q0-s0, clip))

	slen := util.Min(c.Depth(), 3)
	qlen := util.Max(util.Min(c.QueueLen()-1, 3), 0)
	tstack := make([]int, slen)
	for i := range tstack {
		tstack[i], _ = c.Stack.Index(i)
	}
	tqueue := make([]int, qlen)
	for i := range tqueue {
		tqueue[i] = q0 + i
	}
	sw, st := c.words("s_", tstack), c.tags("s_", tstack)
	qw, qt := c.words("q_", tqueue), c.tags("q_", tqueue)

	ls0 := c.LeftDeps[s0]
	lsv := "|s_0:ldeps|=" + strconv.Itoa(util.Min(len(ls0), clip))
	ls0 = firstN(ls0, 2)
	lsw, lst := c.words("s_0:ldep_", ls0), c.tags("s_0:ldep_", ls0)

	rs0 := c.RightDeps[s0]
	rsv := "|s_0:rdeps|=" + strconv.Itoa(util.Min(len(rs0), clip))
	rs0 = lastN(rs0, 2)
	rsw, rst := c.words("s_0:rdep_", rs0), c.tags("s_0:rdep_", rs0)

	// q0 never has right dependents yet
	lq0 := c.LeftDeps[q0]
	lqv := "|q_0:ldeps|=" + strconv.Itoa(util.Min(len(lq0), clip))
	lq0 = firstN(lq0, 2)
	lqw, lqt := c.words("q_0:ldep_", lq0), c.tags("q_0:ldep_", lq0)

	feats := make([]string, 0, 64)
	feats = append(feats, BIAS, depth, gap, lsv, rsv, lqv)
	for _, group := range [][]string{sw, st, qw, qt, lsw, lst, rsw, rst, lqw, lqt} {
		feats = append(feats, group...)
	}
	for i := range qw {
		feats = append(feats, qw[i]+"/"+qt[i])
	}
	for i := range sw {
		feats = append(feats, sw[i]+"/"+st[i])
	}

	sDeep, tDeep := sw[len(sw)-1], st[len(st)-1]
	feats = append(feats,
		join(sDeep, lsv),
		join(tDeep, lsv),
		join(sDeep, rsv),
		join(tDeep, rsv),
		join(sDeep, gap),
		join(tDeep, gap),
	)
	if len(qw) > 0 {
		feats = append(feats,
			join(sDeep, qw[0]),
			join(qw[0]+"/"+qt[0], sDeep),
			join(qw[0]+"/"+qt[0], tDeep),
			join(sDeep+"/"+tDeep, qw[0]),
			join(sDeep+"/"+tDeep, qt[0]),
			join(sDeep+"/"+tDeep, qw[0]+"/"+qt[0]),
			join(tDeep, qt[0]),
		)
		if len(qt) > 1 {
			feats = append(feats, join(qt[0], qt[1]))
		}
		if len(st) >= 2 {
			feats = append(feats, join(tDeep, st[len(st)-2], qt[0]))
		}
		if len(qt) >= 2 {
			feats = append(feats, join(tDeep, qt[0], qt[1]))
			if len(qt) == 3 {
				feats = append(feats, join(qt...))
			}
		}
		if len(lst) > 0 {
			feats = append(feats, join(tDeep, lst[0], qt[0]))
		}
		if len(rst) > 0 {
			feats = append(feats, join(tDeep, rst[0], qt[0]))
		}
		if len(lqt) > 0 {
			feats = append(feats, join(tDeep, qt[0], lqt[0]))
			if len(lqt) == 2 {
				feats = append(feats, join(qt[0], lqt[0], lqt[1]))
			}
		}
		feats = append(feats,
			join(qw[0], lqv),
			join(qt[0], lqv),
			join(qw[0], gap),
			join(qt[0], gap),
			join(sDeep, qw[0], gap),
			join(tDeep, qt[0], gap),
		)
	}
	if len(lst) == 2 {
		feats = append(feats, join(tDeep, lst[0], lst[1]))
	}
	if len(rst) == 2 {
		feats = append(feats, join(tDeep, rst[0], rst[1]))
	}
	if len(st) == 3 {
		feats = append(feats, join(st[2], st[1], st[0]))
	}
	return feats
}
