package nodal

import "gonum.org/v1/gonum/mat"

// Extract maps solved node potentials back into labeled branch quantities.
// v is ignored in ideal mode, where every quantity has a closed form.
// Output currents are always produced; nodeVoltages and allCurrents choose
// whether the voltage groups and the per-branch current groups are too.
func Extract(t *Topology, v *mat.Dense, nodeVoltages, allCurrents bool) *Solution {
	switch t.Mode() {
	case ModeFull:
		return extractFull(t, v, nodeVoltages, allCurrents)
	case ModeWordIdeal:
		return extractWordIdeal(t, v, nodeVoltages, allCurrents)
	case ModeBitIdeal:
		return extractBitIdeal(t, v, nodeVoltages, allCurrents)
	}
	return extractIdeal(t, nodeVoltages, allCurrents)
}

func extractFull(t *Topology, v *mat.Dense, nodeVoltages, allCurrents bool) *Solution {
	m, n, p := t.Dims()

	// The last-row bit node drains to ground through one segment, so its
	// potential over RBit is the externally measured output current.
	output := mat.NewDense(p, n, nil)
	for j := 0; j < n; j++ {
		b := t.BitNode(m-1, j)
		for k := 0; k < p; k++ {
			output.Set(k, j, v.At(b, k)/t.RBit)
		}
	}

	sol := &Solution{Currents: &Currents{Output: output}}

	if allCurrents {
		device := NewStack(m, n, p)
		word := NewStack(m, n, p)
		bit := NewStack(m, n, p)
		for k := 0; k < p; k++ {
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					vw := v.At(t.WordNode(i, j), k)
					vb := v.At(t.BitNode(i, j), k)

					device.Set(i, j, k, (vw-vb)/t.Resistances.At(i, j))

					// Word segment (i, j) feeds its node from the left,
					// from the driver when j is 0.
					feed := t.Applied.At(i, k)
					if j > 0 {
						feed = v.At(t.WordNode(i, j-1), k)
					}
					word.Set(i, j, k, (feed-vw)/t.RWord)

					// Bit segment (i, j) carries its node's current down,
					// into ground at the last row.
					sink := 0.0
					if i < m-1 {
						sink = v.At(t.BitNode(i+1, j), k)
					}
					bit.Set(i, j, k, (vb-sink)/t.RBit)
				}
			}
		}
		sol.Currents.Device = device
		sol.Currents.WordLine = word
		sol.Currents.BitLine = bit
	}

	if nodeVoltages {
		wordV := NewStack(m, n, p)
		bitV := NewStack(m, n, p)
		for k := 0; k < p; k++ {
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					wordV.Set(i, j, k, v.At(t.WordNode(i, j), k))
					bitV.Set(i, j, k, v.At(t.BitNode(i, j), k))
				}
			}
		}
		sol.Voltages = &Voltages{WordLine: wordV, BitLine: bitV}
	}

	return sol
}

func extractWordIdeal(t *Topology, v *mat.Dense, nodeVoltages, allCurrents bool) *Solution {
	m, n, p := t.Dims()

	output := mat.NewDense(p, n, nil)
	for j := 0; j < n; j++ {
		b := t.BitNode(m-1, j)
		for k := 0; k < p; k++ {
			output.Set(k, j, v.At(b, k)/t.RBit)
		}
	}

	sol := &Solution{Currents: &Currents{Output: output}}

	if allCurrents {
		device := deviceBySource(t)
		bit := NewStack(m, n, p)
		for k := 0; k < p; k++ {
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					vb := v.At(t.BitNode(i, j), k)
					sink := 0.0
					if i < m-1 {
						sink = v.At(t.BitNode(i+1, j), k)
					}
					bit.Set(i, j, k, (vb-sink)/t.RBit)
				}
			}
		}
		sol.Currents.Device = device
		sol.Currents.WordLine = wordLineFromDevice(device)
		sol.Currents.BitLine = bit
	}

	if nodeVoltages {
		bitV := NewStack(m, n, p)
		for k := 0; k < p; k++ {
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					bitV.Set(i, j, k, v.At(t.BitNode(i, j), k))
				}
			}
		}
		sol.Voltages = &Voltages{WordLine: appliedBroadcast(t), BitLine: bitV}
	}

	return sol
}

func extractBitIdeal(t *Topology, v *mat.Dense, nodeVoltages, allCurrents bool) *Solution {
	m, n, p := t.Dims()

	// Ideal bit lines deliver each column's device currents to ground
	// without a drop, so the output is the column total.
	output := mat.NewDense(p, n, nil)
	for k := 0; k < p; k++ {
		for j := 0; j < n; j++ {
			total := 0.0
			for i := 0; i < m; i++ {
				total += v.At(t.WordNode(i, j), k) / t.Resistances.At(i, j)
			}
			output.Set(k, j, total)
		}
	}

	sol := &Solution{Currents: &Currents{Output: output}}

	if allCurrents {
		device := NewStack(m, n, p)
		word := NewStack(m, n, p)
		for k := 0; k < p; k++ {
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					vw := v.At(t.WordNode(i, j), k)

					device.Set(i, j, k, vw/t.Resistances.At(i, j))

					feed := t.Applied.At(i, k)
					if j > 0 {
						feed = v.At(t.WordNode(i, j-1), k)
					}
					word.Set(i, j, k, (feed-vw)/t.RWord)
				}
			}
		}
		sol.Currents.Device = device
		sol.Currents.WordLine = word
		sol.Currents.BitLine = bitLineFromDevice(device)
	}

	if nodeVoltages {
		wordV := NewStack(m, n, p)
		for k := 0; k < p; k++ {
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					wordV.Set(i, j, k, v.At(t.WordNode(i, j), k))
				}
			}
		}
		sol.Voltages = &Voltages{WordLine: wordV, BitLine: NewStack(m, n, p)}
	}

	return sol
}

func extractIdeal(t *Topology, nodeVoltages, allCurrents bool) *Solution {
	m, n, p := t.Dims()
	device := deviceBySource(t)

	output := mat.NewDense(p, n, nil)
	for k := 0; k < p; k++ {
		for j := 0; j < n; j++ {
			total := 0.0
			for i := 0; i < m; i++ {
				total += device.At(i, j, k)
			}
			output.Set(k, j, total)
		}
	}

	sol := &Solution{Currents: &Currents{Output: output}}

	if allCurrents {
		sol.Currents.Device = device
		sol.Currents.WordLine = wordLineFromDevice(device)
		sol.Currents.BitLine = bitLineFromDevice(device)
	}

	if nodeVoltages {
		sol.Voltages = &Voltages{WordLine: appliedBroadcast(t), BitLine: NewStack(m, n, p)}
	}

	return sol
}

// deviceBySource reads device currents straight from the source relation:
// an ideal word line holds every device at the applied voltage.
func deviceBySource(t *Topology) *Stack {
	m, n, p := t.Dims()
	device := NewStack(m, n, p)
	for k := 0; k < p; k++ {
		for i := 0; i < m; i++ {
			va := t.Applied.At(i, k)
			for j := 0; j < n; j++ {
				device.Set(i, j, k, va/t.Resistances.At(i, j))
			}
		}
	}
	return device
}

// wordLineFromDevice gives the current an ideal word segment carries:
// everything its row still has to deliver at and past column j.
func wordLineFromDevice(device *Stack) *Stack {
	m, n, p := device.Dims()
	word := NewStack(m, n, p)
	for k := 0; k < p; k++ {
		for i := 0; i < m; i++ {
			total := 0.0
			for j := n - 1; j >= 0; j-- {
				total += device.At(i, j, k)
				word.Set(i, j, k, total)
			}
		}
	}
	return word
}

// bitLineFromDevice gives the current an ideal bit segment carries:
// everything rows 0 through i have drained into column j.
func bitLineFromDevice(device *Stack) *Stack {
	m, n, p := device.Dims()
	bit := NewStack(m, n, p)
	for k := 0; k < p; k++ {
		for j := 0; j < n; j++ {
			total := 0.0
			for i := 0; i < m; i++ {
				total += device.At(i, j, k)
				bit.Set(i, j, k, total)
			}
		}
	}
	return bit
}

// appliedBroadcast spreads the applied voltages across all columns: every
// node on an ideal word line sits at its driver's voltage.
func appliedBroadcast(t *Topology) *Stack {
	m, n, p := t.Dims()
	s := NewStack(m, n, p)
	for k := 0; k < p; k++ {
		for i := 0; i < m; i++ {
			va := t.Applied.At(i, k)
			for j := 0; j < n; j++ {
				s.Set(i, j, k, va)
			}
		}
	}
	return s
}
