// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yosuzuki-lab/jtk-go/biosimd"
)

func TestReverseComp8InplaceOddLength(t *testing.T) {
	seq := []byte("ACGTA")
	biosimd.ReverseComp8Inplace(seq)
	assert.Equal(t, []byte("TACGT"), seq)
}

func TestReverseComp8InplaceEvenLength(t *testing.T) {
	seq := []byte("ACGT")
	biosimd.ReverseComp8Inplace(seq)
	assert.Equal(t, []byte("ACGT"), seq)
}

func TestReverseComp8InplaceLowercaseComplementsUnknownMapsToN(t *testing.T) {
	seq := []byte("acgtN?")
	biosimd.ReverseComp8Inplace(seq)
	assert.Equal(t, []byte("NNACGT"), seq)
}

func TestReverseComp8InplaceEmpty(t *testing.T) {
	seq := []byte{}
	biosimd.ReverseComp8Inplace(seq)
	assert.Empty(t, seq)
}
