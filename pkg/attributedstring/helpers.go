package attributedstring

import (
	"hash/fnv"
	"math"
	"strings"
)

// FragmentString returns the text f contributes to its shard: the attachment
// character for attachments, the fragment text otherwise.
func FragmentString(f Fragment) string {
	if IsAttachment(f) {
		return AttachmentCharacter
	}
	s, _ := f.Text()
	return s
}

// ShardString concatenates the fragments of sh.
func ShardString(sh Shard) (string, error) {
	var b strings.Builder
	for i := 0; i < sh.FragmentCount(); i++ {
		f, err := sh.Fragment(i)
		if err != nil {
			return "", err
		}
		b.WriteString(FragmentString(f))
	}
	return b.String(), nil
}

// JoinedString concatenates every shard of as.
func JoinedString(as AttributedString) (string, error) {
	var b strings.Builder
	for i := 0; i < as.ShardCount(); i++ {
		sh, err := as.Shard(i)
		if err != nil {
			return "", err
		}
		s, err := ShardString(sh)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// CountAttachments returns the number of attachment fragments in sh.
func CountAttachments(sh Shard) (int, error) {
	n := 0
	for i := 0; i < sh.FragmentCount(); i++ {
		f, err := sh.Fragment(i)
		if err != nil {
			return 0, err
		}
		if IsAttachment(f) {
			n++
		}
	}
	return n, nil
}

// CountAllAttachments returns the number of attachment fragments in as.
func CountAllAttachments(as AttributedString) (int, error) {
	total := 0
	for i := 0; i < as.ShardCount(); i++ {
		sh, err := as.Shard(i)
		if err != nil {
			return 0, err
		}
		n, err := CountAttachments(sh)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// AllFragments flattens the fragments of every shard in order.
func AllFragments(as AttributedString) ([]Fragment, error) {
	var out []Fragment
	err := walk(as, func(_ FragmentHandle, f Fragment) error {
		out = append(out, f)
		return nil
	})
	return out, err
}

// FragmentHandle locates a fragment within an attributed string.
type FragmentHandle struct {
	ShardIndex    int
	FragmentIndex int
}

// FragmentAt returns the fragment h refers to.
func FragmentAt(as AttributedString, h FragmentHandle) (Fragment, error) {
	sh, err := as.Shard(h.ShardIndex)
	if err != nil {
		return nil, err
	}
	return sh.Fragment(h.FragmentIndex)
}

// IsEmpty reports whether as has no fragments.
func IsEmpty(as AttributedString) (bool, error) {
	for i := 0; i < as.ShardCount(); i++ {
		sh, err := as.Shard(i)
		if err != nil {
			return false, err
		}
		if sh.FragmentCount() > 0 {
			return false, nil
		}
	}
	return true, nil
}

func walk(as AttributedString, fn func(FragmentHandle, Fragment) error) error {
	for i := 0; i < as.ShardCount(); i++ {
		sh, err := as.Shard(i)
		if err != nil {
			return err
		}
		for j := 0; j < sh.FragmentCount(); j++ {
			f, err := sh.Fragment(j)
			if err != nil {
				return err
			}
			if err := fn(FragmentHandle{ShardIndex: i, FragmentIndex: j}, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// FragmentsLayoutEquivalent reports whether a and b measure identically:
// same text, layout-equivalent attributes and, for attachments, the same
// size.
func FragmentsLayoutEquivalent(a, b Fragment) bool {
	if FragmentString(a) != FragmentString(b) {
		return false
	}
	if IsAttachment(a) != IsAttachment(b) {
		return false
	}
	if IsAttachment(a) && (a.Width() != b.Width() || a.Height() != b.Height()) {
		return false
	}
	return a.TextAttributeProps().LayoutEquivalent(b.TextAttributeProps())
}

// LayoutEquivalent reports whether a and b have the same shard structure and
// pairwise layout-equivalent fragments.
func LayoutEquivalent(a, b AttributedString) (bool, error) {
	if a.ShardCount() != b.ShardCount() {
		return false, nil
	}
	for i := 0; i < a.ShardCount(); i++ {
		sa, err := a.Shard(i)
		if err != nil {
			return false, err
		}
		sb, err := b.Shard(i)
		if err != nil {
			return false, err
		}
		if sa.FragmentCount() != sb.FragmentCount() {
			return false, nil
		}
		for j := 0; j < sa.FragmentCount(); j++ {
			fa, err := sa.Fragment(j)
			if err != nil {
				return false, err
			}
			fb, err := sb.Fragment(j)
			if err != nil {
				return false, err
			}
			if !FragmentsLayoutEquivalent(fa, fb) {
				return false, nil
			}
		}
	}
	return true, nil
}

// LayoutHash hashes what [LayoutEquivalent] compares except attachment
// sizes, so equivalent strings always hash equally.
func LayoutHash(as AttributedString) (uint64, error) {
	h := fnv.New64a()
	var word [8]byte
	writeUint := func(v uint64) {
		for i := range word {
			word[i] = byte(v >> (8 * i))
		}
		h.Write(word[:])
	}
	shard := -1
	err := walk(as, func(handle FragmentHandle, f Fragment) error {
		if handle.ShardIndex != shard {
			shard = handle.ShardIndex
			writeUint(math.MaxUint64)
		}
		h.Write([]byte(FragmentString(f)))
		h.Write([]byte{0})
		writeUint(f.TextAttributeProps().LayoutHash())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
