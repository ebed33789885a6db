// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/ele"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/mdl/gel"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Domain holds all Nodes and Elements active during a stage in addition to the Solution at nodes.
// Only elements in this processor are recorded here; however all nodes and equation numbers
// are known by all processors
type Domain struct {

	// init: auxiliary variables
	Distr   bool            // distributed/parallel run
	Proc    int             // this processor number
	ShowMsg bool            // show messages: if verbose==true and proc==0
	Sim     *inp.Simulation // [from FEM] input data
	Reg     *inp.Region     // region data
	Msh     *inp.Mesh       // mesh data
	Comm    Communicator    // communicator
	LinSol  LinSolver       // linear solver

	// stage: nodes and elements (in this processor)
	Nodes  []*Node       // all nodes. Note: indices in Nodes do NOT correpond to Ids => use Vid2node to access Nodes using Ids.
	Elems  []ele.Element // [procNcells] only elements in this processor
	MyCids []int         // [procNcells] the ids of cells in this processor

	// stage: auxiliary maps for nodes and elements
	Vid2node []*Node         // [nverts] VertexId => index in Nodes
	Vid2mdl  []*gel.Model    // [nverts] VertexId => model of the first cell sharing the vertex
	Cid2elem []ele.Element   // [ncells] CellId => index in Elems. Cells in other processors are 'nil'
	YandC    map[string]bool // y keys of all elements; e.g. "ux", "mu"

	// stage: subsets of elements
	ElemOut   []ele.CanOutputNodes // elements with derived values at vertices
	ElemInteg []ele.CanIntegrate   // elements that compute volume integrals
	ElemClamp []ele.WithClamp      // elements with a stability clamp

	// stage: constraints
	EssenBcs EssentialBcs // constraints (Lagrange multipliers)

	// stage: dimensions
	NnzKb int // number of nonzeros in Kb matrix
	Ny    int // total number of dofs, except λ
	Nlam  int // total number of Lagrange multipliers
	NnzA  int // number of nonzeros in A (constraints) matrix
	Nyb   int // total number of equations: ny + nλ

	// stage: solution and linear solver
	Sol      *ele.Solution // solution state
	Kb       *la.Triplet   // Jacobian == dRdy
	Fb       []float64     // residual == -fb
	Wb       []float64     // workspace
	InitLSol bool          // flag telling that linear solver needs to be initialised prior to any further call
}

// NewDomains returns domains
func NewDomains(sim *inp.Simulation, comm Communicator, verbose bool) (doms []*Domain, err error) {
	doms = make([]*Domain, len(sim.Regions))
	for i, reg := range sim.Regions {
		d := new(Domain)
		d.Distr = comm.Size() > 1
		d.Proc = comm.Rank()
		d.ShowMsg = verbose && d.Proc == 0
		d.Sim = sim
		d.Reg = reg
		d.Msh = reg.Msh
		d.Comm = comm
		if d.Distr {
			if comm.Size() != reg.Msh.Nparts {
				return nil, chk.Err("number of processors must be equal to the number of partitions defined in mesh. %d != %d", comm.Size(), reg.Msh.Nparts)
			}
		}
		doms[i] = d
	}
	return
}

// Free frees memory
func (o *Domain) Free() {
	if o.LinSol != nil {
		o.LinSol.Free()
	}
	o.InitLSol = true // tell solver that lis has to be initialised before use
}

// SetStage set nodes, equation numbers and auxiliary data for given stage
func (o *Domain) SetStage(stgidx int) (err error) {

	// pointer to stage structure
	stg := o.Sim.Stages[stgidx]

	// nodes and elements (in this processor)
	o.Nodes = make([]*Node, 0)
	o.Elems = make([]ele.Element, 0)
	o.MyCids = make([]int, 0)

	// auxiliary maps for nodes and elements
	o.Vid2node = make([]*Node, len(o.Msh.Verts))
	o.Vid2mdl = make([]*gel.Model, len(o.Msh.Verts))
	o.Cid2elem = make([]ele.Element, len(o.Msh.Cells))
	o.YandC = make(map[string]bool)

	// subsets of elements
	o.ElemOut = make([]ele.CanOutputNodes, 0)
	o.ElemInteg = make([]ele.CanIntegrate, 0)
	o.ElemClamp = make([]ele.WithClamp, 0)

	// owners of vertices: smallest partition sharing vertex
	owner := make([]int, len(o.Msh.Verts))
	for i := range owner {
		owner[i] = -1
	}
	for _, cell := range o.Msh.Cells {
		for _, v := range cell.Verts {
			if owner[v] < 0 || cell.Part < owner[v] {
				owner[v] = cell.Part
			}
		}
	}

	// allocate nodes and cells ---------------------------------------------------------------------

	// for each cell
	var eq int // current equation number => total number of equations @ end of loop
	o.NnzKb = 0
	for _, cell := range o.Msh.Cells {

		// get element info
		info, err := ele.GetInfo(cell, o.Reg, o.Sim)
		if err != nil {
			return chk.Err("get element information failed:\n%v", err)
		}
		if len(info.Dofs) != len(cell.Verts) {
			return chk.Err("number of nodes with dofs (%d) of cell %d is incorrect. %d expected", len(info.Dofs), cell.Id, len(cell.Verts))
		}

		// store y information
		for ykey := range info.Y2F {
			o.YandC[ykey] = true
		}

		// model
		edat := o.Reg.Etag2data(cell.Tag)
		mat := o.Sim.MatModels.Get(edat.Mat)

		// loop over nodes of this element
		var eNdof int // number of DOFs of this elmeent
		for j, v := range cell.Verts {

			// new or existent node
			var nod *Node
			if o.Vid2node[v] == nil {
				nod = NewNode(o.Msh.Verts[v], owner[v])
				o.Vid2node[v] = nod
				o.Vid2mdl[v] = mat.Gel
				o.Nodes = append(o.Nodes, nod)
			} else {
				nod = o.Vid2node[v]
			}

			// set DOFs and equation numbers
			for _, ukey := range info.Dofs[j] {
				eq = nod.AddDofAndEq(ukey, eq)
				eNdof += 1
			}
		}

		// number of non-zeros
		o.NnzKb += eNdof * eNdof

		// allocate element
		mycell := cell.Part == o.Proc // cell belongs to this processor
		if mycell || !o.Distr {

			// new element
			e, err := ele.New(cell, o.Reg, o.Sim)
			if err != nil {
				return chk.Err("new element failed:\n%v", err)
			}
			o.Cid2elem[cell.Id] = e
			o.Elems = append(o.Elems, e)
			o.MyCids = append(o.MyCids, e.Id())

			// give equation numbers to new element
			eqs := make([][]int, len(cell.Verts))
			for j, v := range cell.Verts {
				for _, dof := range o.Vid2node[v].Dofs {
					eqs[j] = append(eqs[j], dof.Eq)
				}
			}
			err = e.SetEqs(eqs)
			if err != nil {
				return chk.Err("cannot set element equations:\n%v", err)
			}

			// subsets of elements
			o.add_element_to_subsets(e)
		}
	}

	// essential boundary conditions ----------------------------------------------------------------

	// (re)set constraints
	o.EssenBcs.Init()

	// face essential boundary conditions
	for _, fc := range stg.FaceBcs {
		verts, ok := o.Msh.FaceTag2verts[fc.Tag]
		if !ok {
			return chk.Err("cannot find faces with tag = %d to assign face boundary conditions", fc.Tag)
		}
		for j, key := range fc.Keys {
			if !o.YandC[key] {
				return chk.Err("cannot set boundary condition with key %q on face %d: key is not a dof of any element", key, fc.Tag)
			}
			fcn, err := o.Sim.Functions.Get(fc.Funcs[j])
			if err != nil {
				return err
			}
			for _, v := range verts {
				d := o.Vid2node[v].GetDof(key)
				if d == nil {
					continue // node doesn't have key. ex: mu in the mid nodes of hex20
				}
				err = o.EssenBcs.Set(key, d.Eq, fc.Funcs[j], fcn)
				if err != nil {
					return chk.Err("setting of essential (face) boundary conditions failed:\n%v", err)
				}
			}
		}
	}

	// size of arrays
	o.Ny = eq
	o.Nlam, o.NnzA, err = o.EssenBcs.Build(o.Ny)
	if err != nil {
		return
	}
	o.Nyb = o.Ny + o.Nlam

	// solution structure: the state is kept between stages with the same equations
	if o.Sol == nil || len(o.Sol.Y) != o.Ny {
		o.Sol = ele.NewSolution(o.Ny, o.Nlam)
	} else {
		o.Sol.L = make([]float64, o.Nlam)
	}

	// linear system and linear solver
	o.Free()
	o.Kb = new(la.Triplet)
	o.Fb = make([]float64, o.Nyb)
	o.Wb = make([]float64, o.Nyb)
	o.Kb.Init(o.Nyb, o.Nyb, o.NnzKb+2*o.NnzA)
	o.LinSol, err = NewLinSolver(&o.Sim.LinSol, o.Comm)
	if err != nil {
		return
	}
	o.InitLSol = true // tell solver that lis has to be initialised before use

	// message
	if o.ShowMsg {
		io.Pf(">> Number of equations = %d\n", o.Ny)
		io.Pf(">> Number of Lagrange multipliers = %d\n", o.Nlam)
		if o.Sim.Data.ListBcs {
			io.Pf("%v", o.EssenBcs.List(o.Sol.T))
		}
	}
	return
}

// SetIniVals sets the initial state: u = 0, p = 0, μ = μ0 and c = c0 in both the current and
// the previous-step states
func (o *Domain) SetIniVals() (err error) {
	o.Sol.Reset()
	for _, nod := range o.Nodes {
		mdl := o.Vid2mdl[nod.Vert.Id]
		if mdl == nil {
			return chk.Err("cannot find model of vertex %d", nod.Vert.Id)
		}
		if eq := nod.GetEq("mu"); eq >= 0 {
			o.Sol.Y[eq] = mdl.Mu0
		}
		if eq := nod.GetEq("c"); eq >= 0 {
			o.Sol.Y[eq] = mdl.C0
		}
	}
	copy(o.Sol.Yold, o.Sol.Y)
	return
}

// AssembleRhs assembles the augmented right-hand side vector fb = -R
func (o *Domain) AssembleRhs() (err error) {
	for i := 0; i < o.Nyb; i++ {
		o.Fb[i] = 0
	}
	for _, e := range o.Elems {
		err = e.AddToRhs(o.Fb, o.Sol)
		if err != nil {
			return
		}
	}

	// join all fb. must be done before the constraints because nodes may be shared
	if o.Distr {
		o.Comm.AllReduceSum(o.Fb, o.Wb)
	}

	// essential boundary conditioins; e.g. constraints
	o.EssenBcs.AddToRhs(o.Fb, o.Sol)
	return
}

// AssembleKb assembles the augmented Jacobian matrix
func (o *Domain) AssembleKb() (err error) {
	o.Kb.Start()
	for _, e := range o.Elems {
		err = e.AddToKb(o.Kb, o.Sol)
		if err != nil {
			return
		}
	}

	// join A and tr(A) matrices into Kb
	if o.Proc == 0 {
		o.EssenBcs.AddToKb(o.Kb, o.Ny)
	}
	return
}

// CorrectionNorm computes the scaled RMS norm of the correction δy
//
//   ‖δy‖ = sqrt( Σ (δy_i / (Atol + Rtol |y_i|))² / ny )
//
//  Note: each processor sums the equations of the nodes it owns
func (o *Domain) CorrectionNorm(δy []float64) float64 {
	atol, rtol := o.Sim.Solver.Atol, o.Sim.Solver.Rtol
	var sum float64
	for _, nod := range o.Nodes {
		if o.Distr && nod.Owner != o.Proc {
			continue
		}
		for _, dof := range nod.Dofs {
			r := δy[dof.Eq] / (atol + rtol*math.Abs(o.Sol.Y[dof.Eq]))
			sum += r * r
		}
	}
	if o.Distr {
		buf, w := []float64{sum}, []float64{0}
		o.Comm.AllReduceSum(buf, w)
		sum = buf[0]
	}
	return math.Sqrt(sum / float64(o.Ny))
}

// NumClamped returns the number of integration points on the plateau of the locking
// function during the last evaluation
func (o *Domain) NumClamped() int {
	var n int
	for _, e := range o.ElemClamp {
		n += e.NumClamped()
	}
	if o.Distr {
		buf, w := []float64{float64(n)}, []float64{0}
		o.Comm.AllReduceSum(buf, w)
		n = int(buf[0])
	}
	return n
}

// Integrate computes volume integrals over all elements; e.g. "vol", "c", "J" and "phi"
func (o *Domain) Integrate() (res map[string]float64, err error) {
	res = make(map[string]float64)
	for _, e := range o.ElemInteg {
		err = e.Integrate(res, o.Sol)
		if err != nil {
			return
		}
	}
	if o.Distr {
		keys := integKeys
		buf := make([]float64, len(keys))
		w := make([]float64, len(keys))
		for i, key := range keys {
			buf[i] = res[key]
		}
		o.Comm.AllReduceSum(buf, w)
		for i, key := range keys {
			res[key] = buf[i]
		}
	}
	return
}

// NodeVals computes derived values at vertices averaged over the elements sharing each vertex
func (o *Domain) NodeVals() (N *ele.NodeVals, err error) {
	N = ele.NewNodeVals(len(o.Msh.Verts))
	for _, e := range o.ElemOut {
		err = e.OutNodeVals(N, o.Sol)
		if err != nil {
			return
		}
	}

	// join sums and counts of all processors. All processors reduce the same keys in the
	// same order, even those without elements
	if o.Distr {
		w := make([]float64, N.Nverts)
		cnt := make([]float64, N.Nverts)
		for _, key := range derivedKeys {
			vals := N.Alloc(key)
			for i := 0; i < N.Nverts; i++ {
				cnt[i] = float64(N.Cnt[key][i])
			}
			o.Comm.AllReduceSum(vals, w)
			o.Comm.AllReduceSum(cnt, w)
			for i := 0; i < N.Nverts; i++ {
				N.Cnt[key][i] = int(cnt[i])
			}
		}
	}
	N.Average()
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// integKeys holds the keys of volume integrals
var integKeys = []string{"vol", "c", "J", "phi"}

// add_element_to_subsets adds an Elem to many subsets as it fits
func (o *Domain) add_element_to_subsets(e ele.Element) {
	if e_, ok := e.(ele.CanOutputNodes); ok {
		o.ElemOut = append(o.ElemOut, e_)
	}
	if e_, ok := e.(ele.CanIntegrate); ok {
		o.ElemInteg = append(o.ElemInteg, e_)
	}
	if e_, ok := e.(ele.WithClamp); ok {
		o.ElemClamp = append(o.ElemClamp, e_)
	}
}
